package main

import (
	"log"
	"net/http"

	"github.com/eventreg/event-registration-api/internal/config"
	"github.com/eventreg/event-registration-api/internal/database"
	"github.com/eventreg/event-registration-api/internal/handlers"
	"github.com/eventreg/event-registration-api/internal/logger"
	"github.com/eventreg/event-registration-api/internal/middleware"
	"github.com/eventreg/event-registration-api/internal/repository"
	"github.com/eventreg/event-registration-api/internal/response"
	"github.com/eventreg/event-registration-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	zapLogger, err := logger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo, regRepo, userRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokenService)
	eventHandler := handlers.NewEventHandler(eventService, cfg.UploadDir)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zapLogger))
	r.Use(cors.Default())

	requireAuth := middleware.RequireAuth(tokenService, zapLogger)

	// Root and health endpoints
	r.GET("/", func(c *gin.Context) {
		response.OK(c, "Welcome to the Event Registration API", gin.H{
			"users":  "/users",
			"signup": "/users/signup",
			"login":  "/users/login",
			"events": "/events",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Event Registration API is running",
		})
	})

	// Uploaded event images
	r.Static("/uploads", cfg.UploadDir)

	// User routes
	users := r.Group("/users")
	{
		users.POST("/signup", userHandler.Signup)
		users.POST("/login", userHandler.Login)
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// Event routes
	events := r.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.GET("/organizer/:organizerId", eventHandler.ListByOrganizer)
		events.GET("/:id", eventHandler.Get)
		events.POST("", requireAuth, eventHandler.Create)
		events.PUT("/:id", requireAuth, eventHandler.Update)
		events.DELETE("/:id", requireAuth, eventHandler.Delete)
		events.POST("/:id/register", requireAuth, eventHandler.Register)
		events.POST("/:id/unregister", requireAuth, eventHandler.Unregister)
	}

	// Unmatched routes get the envelope too
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found")
	})

	// Start server
	zapLogger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
