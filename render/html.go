package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

// DashboardFile is the page written by HTMLRenderer.
const DashboardFile = "index.html"

var funcMap = template.FuncMap{
	"money":          func(v float64) string { return fmt.Sprintf("$%.0f", v) },
	"conditionLabel": models.ConditionLabel,
	"stamp":          func(t time.Time) string { return t.Format(time.DateTime) },
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(funcMap).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>House Sales Dashboard</title>
<style>
  body { font-family: sans-serif; margin: 24px; color: #222; }
  .filters span { display: inline-block; margin-right: 18px; }
  .grid { display: grid; grid-template-columns: repeat(2, minmax(0, 1fr)); gap: 16px; }
  .grid img { width: 100%; border: 1px solid #ddd; }
  .empty { padding: 48px; text-align: center; color: #888; }
</style>
</head>
<body>
<h1>House Sales Dashboard{{if .Filter.Year}} <small>(Year: {{.Filter.Year}})</small>{{end}}</h1>
<div class="filters">
  <span>Neighborhood: <b>{{if .Filter.Category}}{{.Filter.Category}}{{else}}All Neighborhoods{{end}}</b></span>
  <span>Year: <b>{{if .Filter.Year}}{{.Filter.Year}}{{else}}All Years{{end}}</b></span>
  <span>Condition: <b>{{if .Filter.Condition}}{{.Filter.Condition}} - {{conditionLabel .Filter.Condition}}{{else}}All Conditions{{end}}</b></span>
  <span>Price: <b>{{money .Filter.PriceMin}} – {{money .Filter.PriceMax}}</b></span>
  <span>Sales: <b>{{.Count}}</b></span>
  {{if .Playing}}<span>▶ playing</span>{{end}}
</div>
{{if .Charts}}
<div class="grid">
  {{range .Charts}}<img src="{{.}}" alt="{{.}}">
  {{end}}
</div>
{{else}}
<div class="empty">No sales match the current filters.</div>
{{end}}
<p><small>Generated {{stamp .Generated}}</small></p>
</body>
</html>
`))

type dashboardView struct {
	Filter    models.FilterState
	Count     int
	Playing   bool
	Charts    []string
	Generated time.Time
}

// HTMLRenderer draws the charts of a snapshot and writes a dashboard page
// referencing them.
type HTMLRenderer struct {
	charts *ChartRenderer
	logger *utils.Logger
}

// NewHTMLRenderer writes its page into the chart renderer's directory.
func NewHTMLRenderer(charts *ChartRenderer, logger *utils.Logger) *HTMLRenderer {
	return &HTMLRenderer{charts: charts, logger: logger}
}

// Path returns the dashboard page path.
func (h *HTMLRenderer) Path() string {
	return filepath.Join(h.charts.Dir(), DashboardFile)
}

// Render writes charts and page, logging failures.
func (h *HTMLRenderer) Render(snap models.Snapshot) {
	if err := h.Write(snap); err != nil {
		h.logger.Error("[html] %v", err)
	}
}

// Write draws the charts of snap and replaces the dashboard page.
func (h *HTMLRenderer) Write(snap models.Snapshot) error {
	files, err := h.charts.Draw(snap)
	if err != nil {
		return err
	}

	view := dashboardView{
		Filter:    snap.Filter,
		Count:     len(snap.Subset),
		Playing:   snap.Playing,
		Charts:    files,
		Generated: time.Now(),
	}

	tmp := h.Path() + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("html: create page: %w", err)
	}
	if err := dashboardTmpl.Execute(f, view); err != nil {
		_ = f.Close()
		return fmt.Errorf("html: execute template: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("html: close page: %w", err)
	}
	if err := os.Rename(tmp, h.Path()); err != nil {
		return fmt.Errorf("html: replace page: %w", err)
	}

	h.logger.Debug("[html] Dashboard written to %s", h.Path())
	return nil
}
