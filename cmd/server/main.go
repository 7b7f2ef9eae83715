package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ndemidova/ringshop-backend/config"
	"github.com/ndemidova/ringshop-backend/internal/app/cache"
	"github.com/ndemidova/ringshop-backend/internal/app/controller"
	"github.com/ndemidova/ringshop-backend/internal/app/repository"
	"github.com/ndemidova/ringshop-backend/internal/app/serializer"
	"github.com/ndemidova/ringshop-backend/internal/app/service"
	"github.com/ndemidova/ringshop-backend/internal/db"
	"github.com/ndemidova/ringshop-backend/internal/middleware"
	"github.com/ndemidova/ringshop-backend/internal/router"
	"github.com/ndemidova/ringshop-backend/internal/storage"
	"github.com/ndemidova/ringshop-backend/pkg/logger"
	"github.com/ndemidova/ringshop-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:  logLevel,
		Format: logFormat,
	})

	logger.Info("Starting ring shop backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	if err := db.SeedAdmin(&cfg.Admin); err != nil {
		logger.Warn("Failed to seed admin account", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Services; the catalog cache is attached only when Redis is enabled
	var productService service.ProductService
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, running without catalog cache", map[string]interface{}{
				"error": err.Error(),
			})
			productService = service.NewProductService(productRepo)
		} else {
			defer redis.Close()
			productCache := cache.NewProductCache(redis.GetClient(), cfg.Redis.CacheTTL)
			productService = service.NewProductService(productRepo, productCache)
		}
	} else {
		productService = service.NewProductService(productRepo)
	}
	orderService := service.NewOrderService(orderRepo, productRepo)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Serializers and storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)
	productSerializer := serializer.NewProductSerializer(cfg.S3.BaseURL)
	orderSerializer := serializer.NewOrderSerializer(productSerializer)

	// Controllers
	webController := controller.NewWebController(productService, orderService, productSerializer, orderSerializer)
	productController := controller.NewProductController(productService, productSerializer, s3Storage)
	orderController := controller.NewOrderController(orderService, orderSerializer)
	authController := controller.NewAuthController(authService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		webController,
		productController,
		orderController,
		authController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
