package utils

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PlaybackTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housing_playback_ticks_total",
		Help: "Number of playback ticks performed",
	})

	RendersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housing_renders_total",
		Help: "Number of snapshots handed to the renderer",
	})

	SubsetSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "housing_subset_records",
		Help: "Number of records in the current filtered subset",
	})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "housing_render_duration_seconds",
		Help:    "Time spent filtering, aggregating and rendering one snapshot",
		Buckets: prometheus.DefBuckets,
	})
)

// ServeMetrics exposes the default registry on addr. It blocks like
// http.ListenAndServe.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
