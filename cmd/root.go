package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"housing-dashboard/config"
	"housing-dashboard/models"
	"housing-dashboard/services"
	"housing-dashboard/storage"
	"housing-dashboard/utils"
)

const defaultRetryDelay = 2 * time.Second

var (
	cfg    *config.Config
	logger *utils.Logger

	flagSource    string
	flagDataPath  string
	flagOutputDir string
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "housing-dashboard",
	Short: "Explore house sale records by neighborhood, year, condition and price",
	Long: `housing-dashboard loads house sale records and filters them by
neighborhood, year sold, overall condition and a price window. It renders
the filtered subset as charts, a dashboard page, a CSV export or an
interactive terminal view, and can play the years back one by one.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if flagSource != "" {
			cfg.DataSource = flagSource
		}
		if flagDataPath != "" {
			cfg.DataPath = flagDataPath
		}
		if flagOutputDir != "" {
			cfg.OutputDir = flagOutputDir
		}
		if logger == nil {
			logger = utils.NewLoggerTo(os.Stderr)
		}
		logger.SetDebug(flagDebug)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "Record source: json or postgres (default from DATA_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&flagDataPath, "data", "", "Path of the JSON data file (default from DATA_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "Directory for charts, pages and exports (default from OUTPUT_DIR)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadRecords reads the cleaned collection from the configured source.
func loadRecords(ctx context.Context) ([]*models.Record, error) {
	switch cfg.DataSource {
	case "json", "":
		logger.Info("[load] Reading %s", cfg.DataPath)
		src := storage.NewJSONSource(cfg.DataPath, services.NewCleaner(logger))
		return src.Load(ctx)

	case "postgres":
		store, err := openPostgres(ctx)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		logger.Info("[load] Reading table house_sales")
		return store.Load(ctx)

	default:
		return nil, fmt.Errorf("unknown data source %q (use json or postgres)", cfg.DataSource)
	}
}

func openPostgres(ctx context.Context) (*storage.PostgresStore, error) {
	store, err := storage.NewPostgresStore(ctx, cfg.DSN(), &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   defaultRetryDelay,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure the database is running: docker compose up -d")
		return nil, err
	}
	return store, nil
}

// newController loads the records and builds a controller rendering to r.
func newController(ctx context.Context, r services.Renderer) (*services.Controller, error) {
	records, err := loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewController(records, r,
		services.WithInterval(cfg.PlaybackInterval()),
		services.WithLogger(logger),
	)
}

// serveMetrics starts the metrics endpoint when METRICS_ADDR is set.
func serveMetrics() {
	if cfg.MetricsAddr == "" {
		return
	}
	go func() {
		logger.Info("[metrics] Serving on %s/metrics", cfg.MetricsAddr)
		if err := utils.ServeMetrics(cfg.MetricsAddr); err != nil {
			logger.Error("[metrics] %v", err)
		}
	}()
}
