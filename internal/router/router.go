package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sinavkoc/sinavkoc-backend/internal/config"
	"github.com/sinavkoc/sinavkoc-backend/internal/handler"
	"github.com/sinavkoc/sinavkoc-backend/internal/logger"
	"github.com/sinavkoc/sinavkoc-backend/internal/middleware"
	"github.com/sinavkoc/sinavkoc-backend/internal/model"
	"github.com/sinavkoc/sinavkoc-backend/internal/response"
	"github.com/sinavkoc/sinavkoc-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	ExamResult  *handler.ExamResultHandler
	Analysis    *handler.AnalysisHandler
	Study       *handler.StudyHandler
	Homework    *handler.HomeworkHandler
	Class       *handler.ClassHandler
	StudentMgmt *handler.StudentManagementHandler
	Teacher     *handler.TeacherHandler
	Setting     *handler.SettingHandler
	Dashboard   *handler.DashboardHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	authLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware(logger.Component(log, "http")))
	router.Use(middleware.Brotli())

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/catalog", middleware.CacheControl(3600), handlers.Catalog.GetCatalog)
		publicAPI.POST("/exams/preview", handlers.Catalog.Preview)
		publicAPI.POST("/exams/validate-count", handlers.Catalog.ValidateCount)
	}

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		limited := authLimiter.Middleware()
		auth.POST("/student/login", limited, handlers.Auth.StudentLogin)
		auth.POST("/parent/login", limited, handlers.Auth.ParentLogin)
		auth.POST("/teacher/login", limited, handlers.Auth.TeacherLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me",
			middleware.RequireStudentJWT(authService),
			middleware.CheckSingleDeviceSession(authService),
			handlers.Auth.GetStudentProfile,
		)
		auth.GET("/parent/me", middleware.RequireParentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/teacher/me", middleware.RequireTeacherJWT(authService), handlers.Auth.GetTeacherProfile)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
		middleware.NoStore(),
	)
	{
		studentAPI.GET("/exams", handlers.ExamResult.ListOwnExamResults)
		studentAPI.POST("/exams", handlers.ExamResult.CreateExamResult)
		studentAPI.GET("/exams/:exam_id", handlers.ExamResult.GetExamResult)
		studentAPI.PUT("/exams/:exam_id", handlers.ExamResult.UpdateExamResult)
		studentAPI.DELETE("/exams/:exam_id", handlers.ExamResult.DeleteExamResult)

		studentAPI.GET("/analysis", handlers.Analysis.GetOwnAnalysis)

		studentAPI.GET("/study-sessions", handlers.Study.ListSessions)
		studentAPI.POST("/study-sessions", handlers.Study.CreateSession)
		studentAPI.GET("/study-sessions/summary", handlers.Study.GetSummary)
		studentAPI.DELETE("/study-sessions/:id", handlers.Study.DeleteSession)

		studentAPI.GET("/homework", handlers.Homework.ListStudentHomework)
		studentAPI.POST("/homework/:id/complete", handlers.Homework.CompleteHomework)
	}

	// ─── 3. Parent Group (read-only JWT) ───────────────────────────────
	parentAPI := router.Group("/api/v1/parent")
	parentAPI.Use(middleware.RequireParentJWT(authService), middleware.NoStore())
	{
		parentAPI.GET("/exams", handlers.ExamResult.ListOwnExamResults)
		parentAPI.GET("/exams/:exam_id", handlers.ExamResult.GetExamResult)
		parentAPI.GET("/analysis", handlers.Analysis.GetOwnAnalysis)
		parentAPI.GET("/study-sessions/summary", handlers.Study.GetSummary)
		parentAPI.GET("/homework", handlers.Homework.ListStudentHomework)
	}

	// ─── 4. WebSocket Group (Student WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireStudentWSAuth(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		ws.GET("/student/analysis/stream", handlers.WS.AnalysisStream)
	}

	// ─── 5. Teacher Group (JWT + RBAC) ─────────────────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(middleware.RequireTeacherJWT(authService), middleware.NoStore())
	{
		teacherAPI.GET("/dashboard", handlers.Dashboard.GetDashboardData) // Open to all teachers

		// Class management
		teacherAPI.GET("/classes",
			middleware.RequirePermission(model.PermissionClassesRead),
			handlers.Class.ListClasses,
		)
		teacherAPI.GET("/classes/:id",
			middleware.RequirePermission(model.PermissionClassesRead),
			handlers.Class.GetClass,
		)
		teacherAPI.POST("/classes",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.CreateClass,
		)
		teacherAPI.PUT("/classes/:id",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.UpdateClass,
		)
		teacherAPI.DELETE("/classes/:id",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.DeleteClass,
		)

		// Student management
		teacherAPI.GET("/students",
			middleware.RequirePermission(model.PermissionStudentsRead),
			handlers.StudentMgmt.ListStudents,
		)
		teacherAPI.GET("/students/:id",
			middleware.RequirePermission(model.PermissionStudentsRead),
			handlers.StudentMgmt.GetStudent,
		)
		teacherAPI.POST("/students",
			middleware.RequirePermission(model.PermissionStudentsWrite),
			handlers.StudentMgmt.CreateStudent,
		)
		teacherAPI.PUT("/students/:id",
			middleware.RequirePermission(model.PermissionStudentsWrite),
			handlers.StudentMgmt.UpdateStudent,
		)
		teacherAPI.DELETE("/students/:id",
			middleware.RequirePermission(model.PermissionStudentsWrite),
			handlers.StudentMgmt.DeleteStudent,
		)
		teacherAPI.POST("/students/:id/reset-session",
			middleware.RequirePermission(model.PermissionStudentsResetSession),
			handlers.StudentMgmt.ResetStudentSession,
		)
		teacherAPI.GET("/students/:id/exams",
			middleware.RequirePermission(model.PermissionExamsRead),
			handlers.ExamResult.ListStudentExamResults,
		)
		teacherAPI.GET("/students/:id/analysis",
			middleware.RequirePermission(model.PermissionAnalysisRead),
			handlers.Analysis.GetStudentAnalysis,
		)

		// Homework
		teacherAPI.GET("/homework",
			middleware.RequirePermission(model.PermissionClassesRead),
			handlers.Homework.ListTeacherHomework,
		)
		teacherAPI.POST("/homework",
			middleware.RequirePermission(model.PermissionHomeworkWrite),
			handlers.Homework.CreateHomework,
		)
		teacherAPI.GET("/homework/:id/completions",
			middleware.RequirePermission(model.PermissionClassesRead),
			handlers.Homework.GetCompletions,
		)
		teacherAPI.DELETE("/homework/:id",
			middleware.RequirePermission(model.PermissionHomeworkWrite),
			handlers.Homework.DeleteHomework,
		)

		// Teacher accounts
		teacherAPI.GET("/teachers",
			middleware.RequirePermission(model.PermissionTeachersWrite),
			handlers.Teacher.ListTeachers,
		)
		teacherAPI.POST("/teachers",
			middleware.RequirePermission(model.PermissionTeachersWrite),
			handlers.Teacher.CreateTeacher,
		)

		// App Settings Routes
		settingsGroup := teacherAPI.Group("/settings")
		{
			settingsGroup.GET("", middleware.RequirePermission(model.PermissionSettingsRead), handlers.Setting.GetAllSettings)
			settingsGroup.GET("/analysis", middleware.RequirePermission(model.PermissionSettingsRead), handlers.Setting.GetAnalysisConfig)
			settingsGroup.PUT("", middleware.RequirePermission(model.PermissionSettingsWrite), handlers.Setting.UpdateSettings)
		}
	}

	return router
}
