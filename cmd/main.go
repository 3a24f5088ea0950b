package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/Mrinankcoder/garment-vendor/internal/caching"
	"github.com/Mrinankcoder/garment-vendor/internal/handlers"
	"github.com/Mrinankcoder/garment-vendor/internal/jobs"
	"github.com/Mrinankcoder/garment-vendor/internal/jobs/background"
	"github.com/Mrinankcoder/garment-vendor/internal/middleware"
	"github.com/Mrinankcoder/garment-vendor/internal/repositories"
	"github.com/Mrinankcoder/garment-vendor/internal/services"
	"github.com/Mrinankcoder/garment-vendor/pkg/database"
)

const version = "1.0.0"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(context.Background(), databaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		logger.Warn("JWT_SECRET not set, using generated development secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	imageStorage, err := services.NewImageStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		logger.Fatal("failed to initialize image storage", zap.Error(err))
	}
	if err := imageStorage.EnsureBucketExists(context.Background()); err != nil {
		logger.Warn("failed to ensure image bucket exists", zap.Error(err))
	}

	// Create repositories
	vendorRepo := repositories.NewVendorRepo(pool)
	itemRepo := repositories.NewItemRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)
	orderItemRepo := repositories.NewOrderItemRepo(pool)
	itemImageRepo := repositories.NewItemImageRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB, logger)

	// Create services
	vendorSvc := services.NewVendorService(vendorRepo)
	itemSvc := services.NewItemService(itemRepo, vendorRepo, cacheSvc)
	querySvc := services.NewQueryService(vendorRepo, orderRepo, orderItemRepo, cacheSvc)
	placementSvc := services.NewPlacementService(pool, cacheSvc, logger)

	// Background jobs
	alertSvc := jobs.NewStockAlertService(itemRepo, logger)
	scheduler, err := background.NewJobScheduler(alertSvc, vendorRepo, cacheSvc, logger)
	if err != nil {
		logger.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(vendorSvc, jwtSecret)
	vendorHandlers := handlers.NewVendorHandlers(vendorSvc, querySvc)
	itemHandlers := handlers.NewItemHandlers(itemSvc, imageStorage, itemImageRepo)
	orderHandlers := handlers.NewOrderHandlers(placementSvc, querySvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")

	// Vendor registration and token issuance (no JWT required)
	v1.POST("/vendors", vendorHandlers.CreateVendor)
	v1.POST("/auth/token", authHandlers.IssueToken)

	// Read surface (open)
	v1.GET("/vendors", vendorHandlers.ListVendors)
	v1.GET("/vendors/:id", vendorHandlers.GetVendor)
	v1.GET("/vendors/:id/summary", vendorHandlers.GetVendorSummary)
	v1.GET("/items", itemHandlers.ListItems)
	v1.GET("/items/search", itemHandlers.SearchItems)
	v1.GET("/items/:id", itemHandlers.GetItem)
	v1.GET("/items/:id/images", itemHandlers.ListItemImages)
	v1.GET("/orders", orderHandlers.ListOrders)
	v1.GET("/orders/:id", orderHandlers.GetOrder)

	// Retailer-facing placement (open; retailer is free text, not an entity)
	v1.POST("/orders", orderHandlers.PlaceOrder)

	// Vendor-facing catalog mutations (require JWT)
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.VendorJWTConfig(jwtSecret)))

	protected.PUT("/vendors/:id", vendorHandlers.UpdateVendor)
	protected.DELETE("/vendors/:id", vendorHandlers.DeleteVendor)
	protected.POST("/items", itemHandlers.CreateItem)
	protected.PUT("/items/:id", itemHandlers.UpdateItem)
	protected.DELETE("/items/:id", itemHandlers.DeleteItem)
	protected.POST("/items/:id/images", itemHandlers.UploadItemImage)
	protected.DELETE("/items/:id/images/:imageID", itemHandlers.DeleteItemImage)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Fatal("invalid port", zap.String("port", portStr), zap.Error(err))
	}

	logger.Info("garment vendor server starting",
		zap.String("version", version), zap.Int("port", port))

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
