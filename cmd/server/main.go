package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/crewhq/crew-backend/internal/config"
	"github.com/crewhq/crew-backend/internal/constants"
	"github.com/crewhq/crew-backend/internal/database"
	"github.com/crewhq/crew-backend/internal/handlers"
	"github.com/crewhq/crew-backend/internal/middleware"
	"github.com/crewhq/crew-backend/internal/repository"
	"github.com/crewhq/crew-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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

	// Seed the fixed roles and, optionally, the initial admin
	if err := database.Seed(database.GetDB(), cfg); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
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

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganisationRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	userService := services.NewUserService(userRepo, roleRepo)
	orgService := services.NewOrganisationService(orgRepo, userRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	orgHandler := handlers.NewOrganisationHandler(orgService, userService)
	roleHandler := handlers.NewRoleHandler(roleRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Crew backend is running",
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

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/selected", userHandler.GetSelectedUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Organisation routes (protected)
		orgs := api.Group("/organisations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.GET("", orgHandler.ListOrganisations)
			orgs.GET("/:id", orgHandler.GetOrganisation)
			orgs.POST("", orgHandler.CreateOrganisation)
			orgs.PUT("/:id", orgHandler.UpdateOrganisation)
			orgs.DELETE("/:id", orgHandler.DeleteOrganisation)
		}

		// Reference and reporting routes (protected)
		api.GET("/roles", middleware.RequireAuth(), roleHandler.ListRoles)
		api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.GetStats)
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
