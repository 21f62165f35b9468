package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "github.com/gadgetstore/backend/internal/application/admin"
	catalogapp "github.com/gadgetstore/backend/internal/application/catalog"
	identityapp "github.com/gadgetstore/backend/internal/application/identity"
	shoppingapp "github.com/gadgetstore/backend/internal/application/shopping"
	tradeapp "github.com/gadgetstore/backend/internal/application/trade"
	"github.com/gadgetstore/backend/internal/infrastructure/auth"
	"github.com/gadgetstore/backend/internal/infrastructure/config"
	"github.com/gadgetstore/backend/internal/infrastructure/event"
	"github.com/gadgetstore/backend/internal/infrastructure/logger"
	"github.com/gadgetstore/backend/internal/infrastructure/persistence"
	"github.com/gadgetstore/backend/internal/infrastructure/storage"
	"github.com/gadgetstore/backend/internal/interfaces/http/handler"
	"github.com/gadgetstore/backend/internal/interfaces/http/middleware"
	"github.com/gadgetstore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Gadget Store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	tradeInRepo := persistence.NewGormTradeInRepository(db.DB)
	txScope := persistence.NewGormTradeTransactionScope(db.DB)

	// Event bus with an audit trail subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(adminapp.NewActivityLogHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Token blacklist backed by Redis when configured
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled", zap.String("host", cfg.Redis.Host))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Using in-memory token blacklist; revocations are lost on restart")
	}

	// Object storage
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Provider == "s3" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Using stub object storage; uploads are not persisted")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, eventBus, log)
	mediaService := catalogapp.NewMediaService(objectStorage, log)
	productService := catalogapp.NewProductService(productRepo, mediaService, eventBus, log)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo, mediaService, log)
	orderService := tradeapp.NewOrderService(txScope, orderRepo, eventBus, log)
	tradeInService := tradeapp.NewTradeInService(tradeInRepo, eventBus, log)
	statsService := adminapp.NewStatsService(productRepo, orderRepo, tradeInRepo, userRepo, log)

	// Route middleware
	authMW := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	adminMW := middleware.RequireAdmin()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, authMW, log)
	productHandler := handler.NewProductHandler(productService, authMW, adminMW, log)
	cartHandler := handler.NewCartHandler(cartService, authMW, log)
	orderHandler := handler.NewOrderHandler(orderService, authMW, adminMW, log)
	tradeInHandler := handler.NewTradeInHandler(tradeInService, authMW, adminMW, log)
	mediaHandler := handler.NewMediaHandler(mediaService, authMW, log)
	adminHandler := handler.NewAdminHandler(statsService, authService, authMW, adminMW, log)
	systemHandler := handler.NewSystemHandler(db.DB, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureHeaders())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodySizeLimit(cfg.HTTP.MaxBodySize))

	// Liveness probe outside API versioning
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(authHandler).
		Register(productHandler).
		Register(cartHandler).
		Register(orderHandler).
		Register(tradeInHandler).
		Register(mediaHandler).
		Register(adminHandler).
		Register(systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
