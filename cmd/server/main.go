package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/shop-backend/config"
	"github.com/ikkim/shop-backend/internal/app/controller"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/internal/router"
	"github.com/ikkim/shop-backend/internal/storage"
	"github.com/ikkim/shop-backend/pkg/logger"
	"github.com/ikkim/shop-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting shop backend server", logger.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
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
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", logger.Fields{
			"error": err.Error(),
		})
	}

	// Token revocation is only available with Redis
	var revoker service.TokenRevoker
	if cfg.Redis.Enabled() {
		blacklist, err := redis.NewTokenBlacklist(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer blacklist.Close()
		revoker = blacklist
	} else {
		logger.Warn("Redis not configured, logout is disabled")
	}

	// Product images are only available with S3
	var images storage.ImageStorage
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(context.Background(), &cfg.S3)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", err)
		}
		images = s3Storage
	} else {
		logger.Warn("S3 bucket not configured, product image upload is disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	customerRepo := repository.NewUnregisteredCustomerRepository(db.GetDB())
	deliveryTypeRepo := repository.NewDeliveryTypeRepository(db.GetDB())
	productTypeRepo := repository.NewProductTypeRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	userService := service.NewUserService(userRepo, revoker, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	customerService := service.NewUnregisteredCustomerService(customerRepo)
	deliveryTypeService := service.NewDeliveryTypeService(deliveryTypeRepo)
	productTypeService := service.NewProductTypeService(productTypeRepo)
	productService := service.NewProductService(productRepo, productTypeRepo)
	orderService := service.NewOrderService(orderRepo, userRepo, customerRepo, deliveryTypeRepo, productRepo)

	r := router.NewRouter(
		controller.NewAuthController(userService),
		controller.NewUserController(userService, orderService),
		controller.NewUnregisteredCustomerController(customerService, orderService),
		controller.NewDeliveryTypeController(deliveryTypeService),
		controller.NewProductTypeController(productTypeService),
		controller.NewProductController(productService, images),
		controller.NewOrderController(orderService),
		middleware.NewAuthMiddleware(userService),
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", logger.Fields{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
