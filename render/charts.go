package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"housing-dashboard/models"
	"housing-dashboard/services"
	"housing-dashboard/utils"
)

// Chart file names inside the output directory.
const (
	HistogramFile  = "histogram.png"
	ScatterFile    = "scatter.png"
	BoxPlotFile    = "boxplot.png"
	TimeSeriesFile = "timeseries.png"
)

var (
	histogramColor  = drawing.ColorFromHex("2874a6")
	scatterColor    = drawing.ColorFromHex("239b56")
	boxColor        = drawing.ColorFromHex("7E30E1")
	timeSeriesColor = drawing.ColorFromHex("ca6f1e")
)

// ChartRenderer draws the four dashboard charts of a snapshot as PNG files.
type ChartRenderer struct {
	dir         string
	bins        int
	concurrency int
	logger      *utils.Logger
}

// NewChartRenderer creates dir and returns a renderer writing into it.
func NewChartRenderer(dir string, bins, concurrency int, logger *utils.Logger) (*ChartRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}
	if bins < 1 {
		bins = 30
	}
	return &ChartRenderer{dir: dir, bins: bins, concurrency: concurrency, logger: logger}, nil
}

// Dir returns the output directory.
func (c *ChartRenderer) Dir() string { return c.dir }

// Render draws the snapshot, logging failures.
func (c *ChartRenderer) Render(snap models.Snapshot) {
	if _, err := c.Draw(snap); err != nil {
		c.logger.Error("[charts] %v", err)
	}
}

// Draw writes one PNG per chart and returns the file names written. An
// empty subset removes previously drawn charts and writes nothing.
func (c *ChartRenderer) Draw(snap models.Snapshot) ([]string, error) {
	files := []string{HistogramFile, ScatterFile, BoxPlotFile, TimeSeriesFile}

	if len(snap.Subset) == 0 {
		for _, name := range files {
			if err := os.Remove(filepath.Join(c.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("charts: remove stale %s: %w", name, err)
			}
		}
		return nil, nil
	}

	jobs := map[string]func() chartRenderable{
		HistogramFile:  func() chartRenderable { return histogramChart(snap.Subset, c.bins) },
		ScatterFile:    func() chartRenderable { return scatterChart(snap.Subset) },
		BoxPlotFile:    func() chartRenderable { return boxPlotChart(snap.Groups) },
		TimeSeriesFile: func() chartRenderable { return timeSeriesChart(snap.Trend) },
	}

	pool := utils.NewWorkerPool(c.concurrency)
	for _, name := range files {
		name, build := name, jobs[name]
		pool.Submit(func() error {
			return c.writePNG(name, build())
		})
	}
	if err := pool.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug("[charts] Drew %d charts for %d records", len(files), len(snap.Subset))
	return files, nil
}

type chartRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func (c *ChartRenderer) writePNG(name string, ch chartRenderable) error {
	path := filepath.Join(c.dir, name)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("charts: create %s: %w", name, err)
	}
	if err := ch.Render(chart.PNG, f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("charts: render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("charts: close %s: %w", name, err)
	}
	return os.Rename(tmp, path)
}

func histogramChart(subset []*models.Record, bins int) chartRenderable {
	hist := services.PriceHistogram(subset, bins)

	bars := make([]chart.Value, 0, len(hist))
	maxCount := 0
	for _, b := range hist {
		bars = append(bars, chart.Value{
			Value: float64(b.Count),
			Label: shortPrice(b.Lower),
			Style: chart.Style{FillColor: histogramColor, StrokeColor: histogramColor},
		})
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	const barWidth, barSpacing = 24, 6
	return chart.BarChart{
		Title:      "Sale Price Distribution",
		Width:      maxInt(800, len(bars)*(barWidth+barSpacing)+160),
		Height:     480,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		XAxis:      chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Name:           "Count",
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(maxCount) * 1.1},
			ValueFormatter: integerFormatter,
		},
		Bars: bars,
	}
}

func scatterChart(subset []*models.Record) chartRenderable {
	xs := make([]float64, len(subset))
	ys := make([]float64, len(subset))
	for i, r := range subset {
		xs[i] = r.LivingArea
		ys[i] = r.Price
	}

	return chart.Chart{
		Title:      "GrLivArea vs SalePrice",
		Width:      800,
		Height:     480,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20}},
		XAxis: chart.XAxis{
			Name:  "Above grade living area (sq ft)",
			Range: paddedRange(xs),
		},
		YAxis: chart.YAxis{
			Name:           "Sale Price (USD)",
			Range:          paddedRange(ys),
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sales",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
					DotColor:    scatterColor,
				},
			},
		},
	}
}

// boxPlotChart draws each neighborhood's five-number summary as a stacked
// bar whose bottom segment is transparent, leaving min..max visible.
func boxPlotChart(groups []models.CategoryGroup) chartRenderable {
	hidden := chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent}
	whisker := chart.Style{FillColor: boxColor.WithAlpha(70), StrokeColor: boxColor, StrokeWidth: 1}
	box := chart.Style{FillColor: boxColor, StrokeColor: drawing.ColorWhite, StrokeWidth: 1}

	bars := make([]chart.StackedBar, 0, len(groups))
	for _, g := range groups {
		s := services.Summarize(g.Prices)
		bars = append(bars, chart.StackedBar{
			Name:  g.Category,
			Width: 30,
			Values: []chart.Value{
				{Value: s.Min, Style: hidden},
				{Value: s.Q1 - s.Min, Style: whisker},
				{Value: s.Median - s.Q1, Style: box},
				{Value: s.Q3 - s.Median, Style: box},
				{Value: s.Max - s.Q3, Style: whisker},
			},
		})
	}

	return chart.StackedBarChart{
		Title:      "Sale Price by Neighborhood",
		Width:      maxInt(800, len(bars)*45+120),
		Height:     480,
		BarSpacing: 15,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		XAxis:      chart.Style{FontSize: 7},
		Bars:       bars,
	}
}

func timeSeriesChart(trend []models.YearMean) chartRenderable {
	xs := make([]float64, len(trend))
	ys := make([]float64, len(trend))
	for i, p := range trend {
		xs[i] = float64(p.Year)
		ys[i] = p.Mean
	}

	return chart.Chart{
		Title:      "Average Sale Price Over Time",
		Width:      800,
		Height:     480,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20}},
		XAxis: chart.XAxis{
			Name:           "Year Sold",
			Range:          paddedRange(xs),
			ValueFormatter: integerFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Average Sale Price (USD)",
			Range:          paddedRange(ys),
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Average",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: timeSeriesColor,
					StrokeWidth: 2,
					DotColor:    timeSeriesColor,
					DotWidth:    4,
				},
			},
		},
	}
}

// paddedRange spans values with a 5% margin; a single distinct value gets
// a unit margin so the range is never empty.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(values) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(1, math.Abs(lo)*0.05)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func priceFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return shortPrice(f)
	}
	return ""
}

func integerFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

// shortPrice renders 125000 as "$125k".
func shortPrice(v float64) string {
	switch {
	case math.Abs(v) >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case math.Abs(v) >= 1e3:
		return fmt.Sprintf("$%.0fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
