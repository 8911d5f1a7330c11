package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/smartsupplypro/inventory/internal/application/analytics"
	inventoryapp "github.com/smartsupplypro/inventory/internal/application/inventory"
	partnerapp "github.com/smartsupplypro/inventory/internal/application/partner"
	"github.com/smartsupplypro/inventory/internal/infrastructure/auth"
	"github.com/smartsupplypro/inventory/internal/infrastructure/config"
	"github.com/smartsupplypro/inventory/internal/infrastructure/logger"
	"github.com/smartsupplypro/inventory/internal/infrastructure/persistence"
	"github.com/smartsupplypro/inventory/internal/interfaces/http/handler"
	"github.com/smartsupplypro/inventory/internal/interfaces/http/middleware"
	"github.com/smartsupplypro/inventory/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting inventory service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
	itemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	historyRepo := persistence.NewGormStockHistoryRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB, cfg.Database.LockTimeout)

	// Application services
	itemService := inventoryapp.NewInventoryItemService(scope, itemRepo, supplierRepo)
	historyService := inventoryapp.NewStockHistoryService(historyRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	analyticsService := analyticsapp.NewAnalyticsService(itemRepo, historyRepo)

	// Token validation for actor attribution
	tokens := auth.NewTokenService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	if len(cfg.HTTP.AllowOrigins) > 0 {
		engine.Use(middleware.CORS(cfg.HTTP.AllowOrigins))
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Identity(tokens, log))

	handler.NewHealthHandler(db).RegisterRoutes(engine)

	r := router.New(engine)
	r.Register(handler.NewInventoryItemHandler(itemService)).
		Register(handler.NewStockHistoryHandler(historyService)).
		Register(handler.NewSupplierHandler(supplierService)).
		Register(handler.NewAnalyticsHandler(analyticsService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
