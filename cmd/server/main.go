package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/studiocrm/crm-api/internal/config"
	"github.com/studiocrm/crm-api/internal/constants"
	"github.com/studiocrm/crm-api/internal/database"
	"github.com/studiocrm/crm-api/internal/handlers"
	"github.com/studiocrm/crm-api/internal/middleware"
	"github.com/studiocrm/crm-api/internal/repository"
	"github.com/studiocrm/crm-api/internal/services"
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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Seed demo accounts for local development
	if cfg.SeedDemoUsers {
		if err := database.SeedDemoUsers(database.GetDB()); err != nil {
			log.Fatalf("Failed to seed demo users: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewContactLogRepository(db)
	repNoteRepo := repository.NewRepNoteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	contactService := services.NewContactService(contactRepo, logRepo, userRepo)
	taskService := services.NewTaskService(taskRepo)
	dashboardService := services.NewDashboardService(contactRepo, taskRepo, repNoteRepo, cfg.DueSoonWindowDays)
	exportService := services.NewExportService(dashboardService, contactRepo, taskRepo, logRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	contactHandler := handlers.NewContactHandler(contactService, taskService, cfg.DueSoonWindowDays)
	taskHandler := handlers.NewTaskHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "CRM API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (login is public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PATCH("/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// User management (admin)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
			users.GET("/reps", userHandler.ListReps)
		}

		// Contact routes (protected)
		contacts := api.Group("/contacts")
		contacts.Use(middleware.RequireAuth())
		{
			contacts.GET("", contactHandler.ListContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.GET("/:id", middleware.RequireContactAccess(), contactHandler.GetContact)
			contacts.PATCH("/:id", middleware.RequireContactAccess(), contactHandler.UpdateContact)
			contacts.DELETE("/:id", middleware.RequireContactAccess(), contactHandler.DeleteContact)
			contacts.POST("/:id/archive", middleware.RequireContactAccess(), contactHandler.ArchiveContact)
			contacts.POST("/:id/unarchive", middleware.RequireContactAccess(), contactHandler.UnarchiveContact)
			contacts.POST("/:id/tasks", middleware.RequireContactAccess(), contactHandler.CreateTask)
			contacts.POST("/:id/interactions", middleware.RequireContactAccess(), contactHandler.CreateInteraction)
			contacts.POST("/:id/orders", middleware.RequireContactAccess(), contactHandler.CreateOrder)
			contacts.POST("/:id/pop", middleware.RequireContactAccess(), contactHandler.CreatePOP)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.POST("/:id/complete", middleware.RequireTaskAccess(), taskHandler.CompleteTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth())
		{
			dashboard.GET("", dashboardHandler.GetDashboard)
		}

		// Rep note mutation (admin check inside the service)
		reps := api.Group("/reps")
		reps.Use(middleware.RequireAuth())
		{
			reps.PUT("/:rep/note", dashboardHandler.UpdateRepNote)
		}

		// Export routes (admin)
		export := api.Group("/export")
		export.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			export.GET("/rep-stats.csv", exportHandler.RepStatsCSV)
			export.GET("/backup.zip", exportHandler.BackupZIP)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
