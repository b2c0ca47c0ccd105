package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"housing-dashboard/models"
	"housing-dashboard/render"
	"housing-dashboard/services"
	"housing-dashboard/storage"
)

var (
	reportFilters filterFlags
	reportFormat  string
	reportOutput  string
	reportCSV     bool
	reportHTML    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print statistics for one filter selection",
	Long: `Apply a filter selection once and print insights for the matching sales.

Examples:
  housing-dashboard report --neighborhood NAmes --year 2008
  housing-dashboard report --condition 7 --format yaml -o report.yaml
  housing-dashboard report --min-price 150000 --csv --html`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportFilters.bind(reportCmd)
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text, json or yaml")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file path (default: stdout)")
	reportCmd.Flags().BoolVar(&reportCSV, "csv", false, "Also export the subset as CSV")
	reportCmd.Flags().BoolVar(&reportHTML, "html", false, "Also draw charts and the dashboard page")
}

// reportData is the structured form of a report.
type reportData struct {
	Snapshot models.Snapshot       `json:"snapshot" yaml:"snapshot"`
	Domain   *models.Domain        `json:"domain" yaml:"domain"`
	Insights *models.InsightReport `json:"insights" yaml:"insights"`
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var renderers services.MultiRenderer
	if reportCSV {
		csvWriter, err := storage.NewCSVWriter(cfg.CSVPath(), logger)
		if err != nil {
			return err
		}
		renderers = append(renderers, csvWriter)
	}
	if reportHTML {
		charts, err := render.NewChartRenderer(cfg.OutputDir, cfg.HistogramBins, cfg.RenderConcurrency, logger)
		if err != nil {
			return err
		}
		renderers = append(renderers, render.NewHTMLRenderer(charts, logger))
	}

	ctrl, err := newController(ctx, renderers)
	if err != nil {
		return err
	}
	reportFilters.apply(cmd, ctrl)
	snap := ctrl.Snapshot()

	insightSvc := services.NewInsightService(logger)
	insights := insightSvc.Generate(snap.Subset)

	var out io.Writer = os.Stdout
	if reportOutput != "" {
		f, err := os.Create(reportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch reportFormat {
	case "text":
		insightSvc.Print(out, snap.Filter, insights)
		if reportCSV {
			fmt.Fprintf(out, "  Subset CSV → %s\n", cfg.CSVPath())
		}
		if reportHTML {
			fmt.Fprintf(out, "  Dashboard  → %s\n", cfg.OutputDir)
		}
		return nil

	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(reportData{Snapshot: snap, Domain: ctrl.Domain(), Insights: insights}); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reportData{Snapshot: snap, Domain: ctrl.Domain(), Insights: insights})

	default:
		return fmt.Errorf("unsupported report format: %s (use text, json or yaml)", reportFormat)
	}
}
