package main

import (
	"context"
	"log"

	"github.com/AbdellahRAISSOUNI/rjilat/internal/router"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/blobstore"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/config"
	"github.com/AbdellahRAISSOUNI/rjilat/pkg/logger"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logger
	if err := logger.Init(cfg.LogLevel, cfg.LogPath); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize the image store
	ctx := context.Background()
	store, err := blobstore.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, store, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
