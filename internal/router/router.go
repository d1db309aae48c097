package router

import (
	"log"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/handlers"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/middleware"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"github.com/AbdellahRAISSOUNI/rjilat/internal/repositories"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/blobstore"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, store blobstore.BlobStore, cfg *config.Config) {
	// AutoMigrate the PostgreSQL audit log table
	if err := pgdb.AutoMigrate(&models.AdminActionLog{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database(cfg.MongoDatabase)
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	logRepo := repositories.NewPostgresAdminLogRepository(pgdb)

	// --- Auth routes (rate limited, no token required) ---
	authGroup := e.Group("/api/auth")
	authGroup.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public routes: a valid token annotates per-caller state, but
	// anonymous requests pass through ---
	public := e.Group("/api")
	public.Use(middleware.OptionalAuthenticate(cfg.JWTSecret))

	// --- Protected routes (require a caller identity) ---
	protected := e.Group("/api")
	protected.Use(middleware.Authenticate(cfg.JWTSecret))
	protected.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	// User profile and discovery routes
	userHandler := handlers.NewUserHandler(userRepo, postRepo)
	userHandler.RegisterUserRoutes(public)
	log.Println("User routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, commentRepo, userRepo, store)
	postHandler.RegisterPostRoutes(public, protected)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo)
	feedHandler.RegisterFeedRoutes(public, protected)
	log.Println("Feed routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(userRepo)
	followHandler.RegisterFollowRoutes(protected)
	log.Println("Follow routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(public, protected)
	log.Println("Comment routes configured.")

	// Admin routes
	admin := e.Group("/api/admin")
	admin.Use(middleware.Authenticate(cfg.JWTSecret))
	admin.Use(middleware.RequireAdmin())
	adminHandler := handlers.NewAdminHandler(postRepo, commentRepo, userRepo, logRepo, store)
	adminHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
