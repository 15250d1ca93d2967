package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ndtduy/commodity-data-backend/internal/api"
	"github.com/ndtduy/commodity-data-backend/internal/browser"
	"github.com/ndtduy/commodity-data-backend/internal/config"
	"github.com/ndtduy/commodity-data-backend/internal/database"
	"github.com/ndtduy/commodity-data-backend/internal/filecache"
	"github.com/ndtduy/commodity-data-backend/internal/lme"
	"github.com/ndtduy/commodity-data-backend/internal/logger"
	"github.com/ndtduy/commodity-data-backend/internal/oilprice"
	"github.com/ndtduy/commodity-data-backend/internal/repository"
	"github.com/ndtduy/commodity-data-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		zapLogger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	zapLogger.Info("connected to database", zap.String("path", cfg.Database.Path))

	// Create repositories
	commodityRepo := repository.NewCommodityRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	fetchLogRepo := repository.NewFetchLogRepository(db)
	changeLogRepo := repository.NewChangeLogRepository(db)

	// Upstream clients share one browser engine
	engine := browser.NewChromeEngine(cfg.Fetch.BrowserTimeout)
	lmeClient := lme.NewBrowserClient(engine)
	oilClient := oilprice.NewBrowserClient(engine)

	cache, err := filecache.New(cfg.Cache.Dir)
	if err != nil {
		zapLogger.Fatal("failed to prepare snapshot cache", zap.Error(err))
	}

	// Create services
	systemService := service.NewSystemService(db)
	fetchService := service.NewFetchService(
		commodityRepo,
		priceRepo,
		fetchLogRepo,
		lmeClient,
		oilClient,
		cache,
		cfg.Fetch.StartDate,
		zapLogger,
	)
	priceService := service.NewPriceService(priceRepo)
	changeLogService := service.NewChangeLogService(changeLogRepo)

	// Create router
	router := api.NewRouter(systemService, fetchService, priceService, changeLogService, cfg, zapLogger)

	// Create HTTP server. The write timeout must outlast a full browser
	// session or fetch responses get cut off mid-flight.
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Fetch.BrowserTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}
