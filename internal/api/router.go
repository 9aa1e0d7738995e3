package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/task-management-api/internal/api/handler"
	"github.com/taskhive/task-management-api/internal/api/middleware"
	"github.com/taskhive/task-management-api/internal/core/service"
	taskmongo "github.com/taskhive/task-management-api/internal/infrastructure/db/mongo"
	taskredis "github.com/taskhive/task-management-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/taskhive/task-management-api/internal/infrastructure/http/handlers"
	"github.com/taskhive/task-management-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongodriver.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Dependencies ---
	userRepo := taskmongo.NewUserRepository(db)
	taskRepo := taskmongo.NewTaskRepository(db)
	statsCache := taskredis.NewStatsCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	taskService := service.NewTaskService(taskRepo, log)
	adminService := service.NewAdminService(userRepo, taskRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	adminHandler := handler.NewAdminHandler(adminService)

	authMiddleware := middleware.Auth(cfg.JWTSecret, userRepo)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Task routes (authenticated users) ---
	tasks := e.Group("/api/tasks", authMiddleware)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.PATCH("/:id/toggle", taskHandler.Toggle)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authMiddleware, middleware.AdminOnly())
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/stats", adminHandler.Stats)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/users/:id/tasks", adminHandler.ListUserTasks)
	admin.POST("/users/:id/tasks", adminHandler.CreateTaskForUser)
	admin.PUT("/users/:id/tasks/:taskId", adminHandler.UpdateUserTask)
	admin.DELETE("/users/:id/tasks/:taskId", adminHandler.DeleteUserTask)
	admin.PATCH("/users/:id/tasks/:taskId/toggle", adminHandler.ToggleUserTask)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	readinessHandler := healthhandlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
