package main

import (
	"log"

	"github.com/avolkov/task-manager-api/internal/auth"
	"github.com/avolkov/task-manager-api/internal/config"
	"github.com/avolkov/task-manager-api/internal/constants"
	"github.com/avolkov/task-manager-api/internal/database"
	"github.com/avolkov/task-manager-api/internal/handlers"
	"github.com/avolkov/task-manager-api/internal/logging"
	"github.com/avolkov/task-manager-api/internal/middleware"
	"github.com/avolkov/task-manager-api/internal/notify"
	"github.com/avolkov/task-manager-api/internal/repository"
	"github.com/avolkov/task-manager-api/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.Setup(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Background notifier for high-priority tasks
	notifier := notify.New(cfg.NotifyWorkers, constants.NotifyDelay, logger)
	notifier.Start()
	defer notifier.Stop()

	// Wire repositories, services and handlers
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokenService := auth.NewTokenService(cfg.JWTSecret)
	userService := services.NewUserService(userRepo, tokenService)
	taskService := services.NewTaskService(taskRepo, notifier)

	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	// User routes (public)
	users := r.Group("/users")
	{
		users.GET("/", userHandler.Root)
		users.POST("/", userHandler.Register)
		users.POST("/token", userHandler.Login)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(userService))
	{
		tasks.POST("/", taskHandler.CreateTask)
		tasks.GET("/:owner", taskHandler.ListTasks)
		tasks.PATCH("/:title", taskHandler.UpdateTask)
		tasks.DELETE("/:title", taskHandler.DeleteTask)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
