package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/creatorgate/service-subscription/internal/adapter"
	"github.com/creatorgate/service-subscription/internal/application"
	"github.com/creatorgate/service-subscription/internal/config"
	"github.com/creatorgate/service-subscription/internal/events"
	"github.com/creatorgate/service-subscription/internal/handler"
	"github.com/creatorgate/service-subscription/internal/platform/auth"
	"github.com/creatorgate/service-subscription/internal/platform/clock"
	"github.com/creatorgate/service-subscription/internal/platform/database"
	"github.com/creatorgate/service-subscription/internal/platform/health"
	"github.com/creatorgate/service-subscription/internal/platform/kafka"
	"github.com/creatorgate/service-subscription/internal/platform/logger"
	"github.com/creatorgate/service-subscription/internal/platform/middleware"
	"github.com/creatorgate/service-subscription/internal/repository"
	"github.com/creatorgate/service-subscription/internal/saga"
	"github.com/creatorgate/service-subscription/internal/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, "service-subscription")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting service-subscription",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.ProviderModel{},
			&repository.SubscriptionModel{},
			&repository.ContentModel{},
			&repository.ChargeModel{},
		); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", zapLogger); err != nil {
			zapLogger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, 15*time.Minute)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
	defer kafkaProducer.Close()

	// Initialize payment gateway (mock for development)
	gateway := adapter.NewMockPaymentGateway(zapLogger)

	// Trusted clock
	clk := clock.System{}

	// Initialize repositories
	providerRepo := repository.NewGormProviderRepository(db)
	subRepo := repository.NewGormSubscriptionRepository(db)
	contentRepo := repository.NewGormContentRepository(db)
	chargeRepo := repository.NewGormChargeRepository(db)

	// Initialize saga and application services
	sagaSvc := saga.NewSubscriptionSagaService(subRepo, gateway, kafkaProducer, clk, zapLogger)
	providerService := application.NewProviderService(providerRepo, clk, zapLogger)
	subService := application.NewSubscriptionService(subRepo, providerRepo, sagaSvc, clk, zapLogger)
	contentService := application.NewContentService(contentRepo, providerRepo, kafkaProducer, clk, zapLogger)
	accessService := application.NewAccessService(contentRepo, subRepo, clk, zapLogger)
	chargeService := application.NewChargeService(chargeRepo, zapLogger)

	// Initialize Kafka consumer for billing events
	consumerGroupID := cfg.KafkaConfig.GroupPrefix + "subscription-service"
	billingConsumer := events.NewBillingEventConsumer(
		cfg.KafkaConfig.Brokers,
		consumerGroupID,
		subService,
		zapLogger,
	)
	defer billingConsumer.Close()

	// Start Kafka consumer in a goroutine
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	go func() {
		zapLogger.Info("starting billing event consumer")
		if err := billingConsumer.Start(consumerCtx); err != nil {
			if consumerCtx.Err() == nil {
				zapLogger.Error("billing event consumer failed", zap.Error(err))
			}
		}
	}()

	// Start the auto-renewal scheduler
	renewalScheduler := scheduler.NewRenewalScheduler(subService, cfg.Renewal.BatchSize, zapLogger)
	if err := renewalScheduler.Start(consumerCtx, cfg.Renewal.CronSpec); err != nil {
		zapLogger.Fatal("failed to start renewal scheduler", zap.Error(err))
	}

	// Initialize HTTP handlers
	providerHandler := handler.NewProviderHandler(providerService)
	subHandler := handler.NewSubscriptionHandler(subService)
	contentHandler := handler.NewContentHandler(contentService)
	accessHandler := handler.NewAccessHandler(accessService)
	adminHandler := handler.NewAdminHandler(subService, chargeService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-subscription")
	healthHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	providerHandler.RegisterRoutes(apiV1, jwtManager)
	subHandler.RegisterRoutes(apiV1, jwtManager)
	contentHandler.RegisterRoutes(apiV1, jwtManager)
	accessHandler.RegisterRoutes(apiV1, jwtManager)
	adminHandler.RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down service-subscription...")

	// Stop scheduler and Kafka consumer
	renewalScheduler.Stop()
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("service-subscription stopped")
}
