package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/database"
	"github.com/sinavkoc/sinavkoc-backend/internal/handler"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/middleware"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/router"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
	"github.com/sinavkoc/sinavkoc-backend/internal/validator"
	"github.com/sinavkoc/sinavkoc-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting SınavKoç Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	teacherRepo := repository.NewTeacherRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	examRepo := repository.NewExamResultRepository(pool)
	studyRepo := repository.NewStudySessionRepository(pool)
	homeworkRepo := repository.NewHomeworkRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	teacherService := service.NewTeacherService(teacherRepo, authService, log)
	classService := service.NewClassService(classRepo)
	studentService := service.NewStudentService(studentRepo, classService, authService, log)
	settingService := service.NewSettingService(settingRepo, rdb, log)
	examService := service.NewExamResultService(examRepo, rdb, log)
	analysisService := service.NewAnalysisService(examRepo, settingService, studentService, rdb, cfg, log)
	studyService := service.NewStudyService(studyRepo)
	homeworkService := service.NewHomeworkService(homeworkRepo, classService, log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, studentService, teacherService),
		Catalog:     handler.NewCatalogHandler(),
		ExamResult:  handler.NewExamResultHandler(examService, studentService),
		Analysis:    handler.NewAnalysisHandler(analysisService),
		Study:       handler.NewStudyHandler(studyService),
		Homework:    handler.NewHomeworkHandler(homeworkService),
		Class:       handler.NewClassHandler(classService),
		StudentMgmt: handler.NewStudentManagementHandler(studentService),
		Teacher:     handler.NewTeacherHandler(teacherService),
		Setting:     handler.NewSettingHandler(settingService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		WS:          handler.NewWSHandler(rdb, analysisService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	analysisWorker := worker.NewAnalysisWorker(rdb, analysisService, cfg, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		analysisWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	authLimiter := middleware.NewRateLimiter(
		middleware.NewRedisCounter(rdb), "auth", cfg.AuthRateLimitPerMin, time.Minute, log,
	)
	r := router.SetupRouter(authService, authLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers; pending refreshes go back on the queue.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
