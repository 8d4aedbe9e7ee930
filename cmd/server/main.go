package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/handlers"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

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

	// Ensure the bootstrap admin account exists
	if err := database.SeedBootstrapAdmin(cfg); err != nil {
		log.Fatalf("Failed to seed bootstrap admin: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	tokenService := services.NewTokenService(cfg, tokenRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, tokenService, cfg)
	userService := services.NewUserService(userRepo, sessionRepo)
	taskService := services.NewTaskService(taskRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)

	requireAuth := middleware.RequireAuth(tokenService, userRepo, sessionRepo)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskboard API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth and account routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/token/refresh", authHandler.Refresh)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/profile", requireAuth, authHandler.GetProfile)
			auth.PATCH("/profile", requireAuth, authHandler.UpdateProfile)
			auth.POST("/delete", requireAuth, authHandler.DeleteAccount)
			auth.POST("/change-password", requireAuth, authHandler.ChangePassword)
			auth.POST("/change-email", requireAuth, authHandler.ChangeEmail)
			auth.GET("/sessions", requireAuth, authHandler.ListSessions)
		}

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("/public", taskHandler.ListPublicTasks)
			tasks.GET("", requireAuth, taskHandler.ListTasks)
			tasks.POST("", requireAuth, taskHandler.CreateTask)
			tasks.GET("/:id", requireAuth, taskHandler.GetTask)
			tasks.PATCH("/:id", requireAuth, taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireAuth, taskHandler.DeleteTask)
		}

		// Administrator-only user management
		users := api.Group("/users")
		users.Use(requireAuth, middleware.RequireAdministrator())
		{
			users.GET("", userHandler.ListUsers)
			users.POST("/:id/promote", userHandler.PromoteUser)
			users.POST("/:id/demote", userHandler.DemoteUser)
			users.POST("/:id/ban", userHandler.BanUser)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
