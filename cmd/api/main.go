package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/adapter"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/middleware"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/server"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/executor"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/config"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/dashboard"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/geocoding"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/listing"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/logger"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	migrate    = flag.Bool("migrate", false, "Create or update the database schema before serving")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "nairim-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Nairim property API")

	// Connect to database. Timestamps are always written in UTC.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	if *migrate {
		if err := store.AutoMigrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Database schema migrated")
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Geocoding.Timeout)

	// Geocoding for the dashboard map
	geocoder := geocoding.NewNominatimClient(httpClient, jsonAdapter, geocoding.ClientConfig{
		BaseURL:        cfg.Geocoding.BaseURL,
		UserAgent:      cfg.Geocoding.UserAgent,
		AcceptLanguage: cfg.Geocoding.AcceptLanguage,
	})
	batcher := geocoding.NewBatcher(geocoder, clock, geocoding.BatcherConfig{
		Concurrency:       cfg.Geocoding.Concurrency,
		RetryDelay:        cfg.Geocoding.RetryDelay,
		RequestsPerSecond: cfg.Geocoding.RequestsPerSecond,
		Country:           cfg.Geocoding.Country,
	})

	engine := dashboard.NewEngine(dataStore, batcher, clock, dashboard.Config{
		MinDocumentsPerProperty: cfg.Dashboard.MinDocumentsPerProperty,
	})
	exec := executor.NewExecutor(dataStore, listing.New(dataStore), engine)

	if cfg.Auth.JWTSecret == "" {
		logger.WarnCtx(ctx, "JWT secret not configured, API routes are not authenticated")
	}

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTSecret: cfg.Auth.JWTSecret,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, exec)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
