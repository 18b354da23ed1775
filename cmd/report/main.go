package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/database"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/repository"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

func main() {
	number := flag.String("student", "", "Student number to report on (required)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	if *number == "" {
		color.Red("-student is required")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	studentRepo := repository.NewStudentRepository(pool)
	examRepo := repository.NewExamResultRepository(pool)
	authService := service.NewAuthService(cfg, rdb)
	classService := service.NewClassService(repository.NewClassRepository(pool))
	studentService := service.NewStudentService(studentRepo, classService, authService, log)
	settingService := service.NewSettingService(repository.NewSettingRepository(pool), rdb, log)
	analysisService := service.NewAnalysisService(examRepo, settingService, studentService, rdb, cfg, log)

	student, err := studentRepo.GetByNumber(ctx, *number)
	if err != nil {
		log.Fatal().Err(err).Str("student_number", *number).Msg("Student not found")
	}

	report, err := analysisService.Compute(ctx, student.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	window := settingService.AnalysisConfig(ctx).RecentWindow
	history, err := examRepo.History(ctx, student.ID, window)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load exam history")
	}

	render(os.Stdout, student, history, report)
}
