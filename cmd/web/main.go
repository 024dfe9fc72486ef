package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/de-tools/defect-atlas/pkg/server"
	"github.com/de-tools/defect-atlas/pkg/server/events"
	"github.com/de-tools/defect-atlas/pkg/services/config"
	"github.com/de-tools/defect-atlas/pkg/services/fixture"
	"github.com/de-tools/defect-atlas/pkg/services/source"
	"github.com/de-tools/defect-atlas/pkg/services/workflow"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb"
	"github.com/de-tools/defect-atlas/pkg/store/duckdb/inspection"
	duckdbworkflow "github.com/de-tools/defect-atlas/pkg/store/duckdb/workflow"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Defect Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (settings can also come from DEFECT_ATLAS_* variables)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(logger.WithContext(cmd.Context()))
	defer cancel()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Store.Path})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	recordStore, err := inspection.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create inspection store: %w", err)
	}
	workflowStore, err := duckdbworkflow.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create workflow store: %w", err)
	}

	hub := events.NewHub()
	workflowCtrl := workflow.NewController(db, recordStore, workflowStore, hub, cfg.Source.SyncInterval)

	demo := source.NewFixtureSource(fixture.NewGenerator(cfg.Fixture.Seed, cfg.Fixture.Count, cfg.Fixture.Days))
	if err := registerProfile(ctx, cfg.Source, workflowCtrl, demo); err != nil {
		return err
	}
	if err := workflowCtrl.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sync scheduler: %w", err)
	}
	defer func() {
		if err := workflowCtrl.Stop(); err != nil {
			logger.Error().Err(err).Msg("failed to stop sync scheduler")
		}
	}()

	var served source.Source = source.NewStoreSource(recordStore)
	if cfg.Source.FallbackToFixture {
		served = source.WithFallback(served, demo)
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		Dependencies: server.Dependencies{
			Source:   source.Serialized(served),
			Ingestor: workflowCtrl,
			Syncs:    workflowCtrl,
			Events:   hub,
			Logger:   logger,
		},
	})

	return api.Start()
}

// registerProfile wires the configured remote profile into the sync
// scheduler. Without one, demo data is synced when fallback is enabled.
func registerProfile(ctx context.Context, cfg config.SourceConfig, ctrl *workflow.Controller, demo source.Source) error {
	logger := zerolog.Ctx(ctx)

	if cfg.Profile == "" {
		if cfg.FallbackToFixture {
			ctrl.Register(fixture.Origin, demo)
			logger.Info().Msg("No source profile configured, syncing demo data")
		}
		return nil
	}

	registry, err := config.NewRegistry(cfg.ProfilesPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}
	profile, err := registry.GetProfile(ctx, cfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to load profile %s: %w", cfg.Profile, err)
	}
	src, err := source.New(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to create source for %s: %w", profile, err)
	}

	ctrl.Register(profile.Name, src)
	logger.Info().
		Str("profile", profile.Name).
		Str("type", string(profile.Type)).
		Str("profiles_path", cfg.ProfilesPath).
		Msg("Source profile registered")
	return nil
}

func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
