package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mc-postgres-db/internal/ingest/config"
	"mc-postgres-db/internal/ingest/service"
	"mc-postgres-db/internal/mockstore"
	"mc-postgres-db/internal/schema"
	"mc-postgres-db/internal/store"
	"mc-postgres-db/pkg/logger"
	"mc-postgres-db/pkg/postgres"

	"github.com/spf13/cobra"
)

var (
	configPath string
	table      string
	mode       string
	file       string
	dryRun     bool
)

func readRows(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []map[string]any
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return raw, nil
}

func runSetData(cmd *cobra.Command, args []string) error {
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

	raw, err := readRows(file)
	if err != nil {
		return err
	}

	registry := schema.Default()
	var writer store.Writer
	if dryRun {
		// Validate against the in-memory store only.
		writer = mockstore.New(registry, appLogger)
	} else {
		db, err := postgres.NewDB(cfg.Database.PostgresConfig())
		if err != nil {
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			defer sqlDB.Close()
		}
		writer = store.NewDBStore(db.DB, registry, appLogger)
	}

	svc := service.NewIngestService(writer, registry, cfg.Ingest.MaxBatchSize, appLogger)
	resp, err := svc.Write(ctx, table, mode, raw)
	if err != nil {
		return err
	}

	appLogger.Info("Rows written",
		logger.StringField("table", resp.Table),
		logger.StringField("mode", resp.Mode),
		logger.IntField("count", resp.Rows),
		logger.Field("dry_run", dryRun))
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "set-data",
		Short:        "Write a JSON array of rows to a market table",
		RunE:         runSetData,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-ingest.yaml", "Path to the configuration file")
	rootCmd.Flags().StringVarP(&table, "table", "t", "", "Target table")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", string(store.ModeUpsert), "Write mode: insert, append or upsert")
	rootCmd.Flags().StringVarP(&file, "file", "f", "", "Path to a JSON file holding an array of rows")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate against an in-memory store instead of Postgres")
	_ = rootCmd.MarkFlagRequired("table")
	_ = rootCmd.MarkFlagRequired("file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing set-data CLI: %s\n", err)
		os.Exit(1)
	}
}
