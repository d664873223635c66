package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sprintboard/sprintboard/internal/config"
	"github.com/sprintboard/sprintboard/internal/constants"
	"github.com/sprintboard/sprintboard/internal/database"
	"github.com/sprintboard/sprintboard/internal/handlers"
	"github.com/sprintboard/sprintboard/internal/middleware"
	"github.com/sprintboard/sprintboard/internal/repository"
	"github.com/sprintboard/sprintboard/internal/services"
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

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
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
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	accessService := services.NewAccessService(projectRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, accessService)
	sprintService := services.NewSprintService(sprintRepo, storyRepo, projectRepo, accessService)
	backlogService := services.NewBacklogService(storyRepo, taskRepo, sprintRepo, projectRepo, userRepo, accessService, cfg.OpenBoardStatusUpdates)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	sprintHandler := handlers.NewSprintHandler(sprintService, backlogService)
	storyHandler := handlers.NewStoryHandler(backlogService)
	taskHandler := handlers.NewTaskHandler(backlogService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Sprintboard API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.GET("/:id/board", middleware.RequireProjectAccess(), taskHandler.GetBoard)
			projects.GET("/:id/members", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.ListMembers)
			projects.POST("/:id/members", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.AddMember)
			projects.DELETE("/:id/members/:member_id", middleware.RequireProjectAccess(), middleware.RequireProjectOwner(), projectHandler.RemoveMember)
			projects.POST("/:id/sprints", middleware.RequireProjectAccess(), sprintHandler.CreateSprint)
			projects.POST("/:id/stories", middleware.RequireProjectAccess(), storyHandler.CreateStory)
			projects.POST("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.CreateTask)
		}

		// Sprint routes (protected; access checked in the service layer)
		sprints := api.Group("/sprints")
		sprints.Use(middleware.RequireAuth())
		{
			sprints.GET("/:id", sprintHandler.GetSprint)
			sprints.PATCH("/:id", sprintHandler.UpdateSprint)
			sprints.DELETE("/:id", sprintHandler.DeleteSprint)
			sprints.POST("/:id/stories", sprintHandler.AssignStory)
			sprints.DELETE("/:id/stories/:story_id", sprintHandler.UnassignStory)
		}

		// Story routes (protected)
		stories := api.Group("/stories")
		stories.Use(middleware.RequireAuth())
		{
			stories.PATCH("/:id", storyHandler.UpdateStory)
			stories.DELETE("/:id", storyHandler.DeleteStory)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/status", taskHandler.SetTaskStatus)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
