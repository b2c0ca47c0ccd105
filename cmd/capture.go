package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"housing-dashboard/render"
)

var (
	captureFilters filterFlags
	captureOutput  string
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Render the dashboard page and screenshot it with headless Chrome",
	Long: `Draw the charts and dashboard page for one filter selection, then load
the page in headless Chrome and save a full-page PNG.

Examples:
  housing-dashboard capture --year 2010
  CHROME_BIN=/usr/bin/chromium housing-dashboard capture -o shot.png`,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureFilters.bind(captureCmd)
	captureCmd.Flags().StringVarP(&captureOutput, "output", "o", "", "Screenshot path (default: <output-dir>/dashboard.png)")
}

func runCapture(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	charts, err := render.NewChartRenderer(cfg.OutputDir, cfg.HistogramBins, cfg.RenderConcurrency, logger)
	if err != nil {
		return err
	}
	page := render.NewHTMLRenderer(charts, logger)

	ctrl, err := newController(ctx, nil)
	if err != nil {
		return err
	}
	captureFilters.apply(cmd, ctrl)
	if err := page.Write(ctrl.Snapshot()); err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	out := captureOutput
	if out == "" {
		out = filepath.Join(cfg.OutputDir, "dashboard.png")
	}
	return render.NewCapture(cfg.ChromeBin, cfg.MaxRetries, logger).Screenshot(ctx, page.Path(), out)
}
