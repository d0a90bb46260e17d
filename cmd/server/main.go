package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/glowdesk/crm-api/internal/api"
	"github.com/glowdesk/crm-api/internal/database"
	"github.com/glowdesk/crm-api/internal/logger"
	"github.com/glowdesk/crm-api/internal/middleware"
	"github.com/glowdesk/crm-api/pkg/config"
)

func main() {
	log := logger.NewSimpleLogger()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()
	if cfg.DatabaseURL == "" {
		log.Fatal("configuration error", nil, "DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("configuration error", nil, "JWT_SECRET is required")
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to run migrations", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		log.Fatal("Failed to set trusted proxies", err)
	}

	// Add security middleware
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg))

	// Add rate limiting when enabled
	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware(cfg))
	}

	// Add recovery middleware
	r.Use(gin.Recovery())

	// Setup API routes
	if err := api.SetupRoutes(r, db, cfg, log); err != nil {
		log.Fatal("Failed to setup API routes", err)
	}

	// Start server
	log.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server", err)
	}
}
