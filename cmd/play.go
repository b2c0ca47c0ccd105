package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"housing-dashboard/models"
	"housing-dashboard/render"
	"housing-dashboard/services"
	"housing-dashboard/storage"
)

var (
	playFilters filterFlags
	playTicks   int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the years back, redrawing the dashboard on every tick",
	Long: `Cycle the year filter through every year in the data, redrawing the
charts, the dashboard page and the CSV export on each tick. Runs until
interrupted or until --ticks ticks have been played.

Examples:
  housing-dashboard play
  housing-dashboard play --neighborhood CollgCr --ticks 5
  PLAYBACK_INTERVAL_MS=500 METRICS_ADDR=:9090 housing-dashboard play`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playFilters.bind(playCmd)
	playCmd.Flags().IntVar(&playTicks, "ticks", 0, "Stop after this many ticks (0: run until interrupted)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	serveMetrics()

	charts, err := render.NewChartRenderer(cfg.OutputDir, cfg.HistogramBins, cfg.RenderConcurrency, logger)
	if err != nil {
		return err
	}
	page := render.NewHTMLRenderer(charts, logger)
	csvWriter, err := storage.NewCSVWriter(cfg.CSVPath(), logger)
	if err != nil {
		return err
	}

	ticks := make(chan models.Snapshot, 1)
	onTick := services.RenderFunc(func(snap models.Snapshot) {
		if !snap.Playing {
			return
		}
		select {
		case ticks <- snap:
		default:
		}
	})

	ctrl, err := newController(ctx, services.MultiRenderer{page, csvWriter, onTick})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	playFilters.apply(cmd, ctrl)
	if err := ctrl.Start(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	logger.Info("[play] Playing %d years every %v, dashboard at %s",
		len(ctrl.Domain().Years), cfg.PlaybackInterval(), page.Path())

	played := 0
	for {
		select {
		case <-ctx.Done():
			logger.Info("[play] Interrupted after %d ticks", played)
			return nil
		case snap := <-ticks:
			played++
			logger.Info("[play] Year %d: %d sales", snap.Filter.Year, len(snap.Subset))
			if playTicks > 0 && played >= playTicks {
				logger.Info("[play] Done after %d ticks", played)
				return nil
			}
		}
	}
}
