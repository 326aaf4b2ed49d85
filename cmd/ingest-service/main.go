package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mc-postgres-db/internal/ingest/config"
	delivery "mc-postgres-db/internal/ingest/delivery/http"
	"mc-postgres-db/internal/ingest/service"
	"mc-postgres-db/internal/repository"
	"mc-postgres-db/internal/schema"
	"mc-postgres-db/internal/store"
	"mc-postgres-db/pkg/logger"
	"mc-postgres-db/pkg/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the ingest service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Ingest Service", logger.Field("name", cfg.App.Name))

	cacheTTL, err := cfg.Ingest.CacheTTL()
	if err != nil {
		appLogger.Fatal("Invalid asset cache TTL", logger.ErrorField(err))
	}
	timeout, err := cfg.Ingest.Timeout()
	if err != nil {
		appLogger.Fatal("Invalid request timeout", logger.ErrorField(err))
	}

	db, err := postgres.NewDB(cfg.Database.PostgresConfig())
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	registry := schema.Default()

	// Initialize repositories and stores
	writer := store.NewDBStore(db.DB, registry, appLogger)
	providerAssetRepo := repository.NewProviderAssetRepository(db.DB)

	// Initialize services
	ingestSvc := service.NewIngestService(writer, registry, cfg.Ingest.MaxBatchSize, appLogger)
	resolver := service.NewAssetResolver(providerAssetRepo, cacheTTL, appLogger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.ContextTimeout(timeout))

	apiV1 := e.Group("/api/v1")
	delivery.NewTableHandler(ingestSvc, appLogger).RegisterRoutes(apiV1.Group("/tables"))
	delivery.NewProviderAssetHandler(resolver, appLogger).RegisterRoutes(apiV1.Group("/providers"))

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "ingest-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-ingest.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing ingest-service CLI: %s\n", err)
		os.Exit(1)
	}
}
