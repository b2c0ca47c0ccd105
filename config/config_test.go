package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATA_SOURCE", "DATA_PATH", "PLAYBACK_INTERVAL_MS", "PRICE_STEP", "METRICS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DataSource != "json" || cfg.DataPath != "./data.json" {
		t.Errorf("source defaults: got %q %q", cfg.DataSource, cfg.DataPath)
	}
	if cfg.PlaybackInterval() != 2*time.Second {
		t.Errorf("interval: got %v", cfg.PlaybackInterval())
	}
	if cfg.PriceStep != 1000 {
		t.Errorf("price step: got %d", cfg.PriceStep)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("metrics should be disabled by default, got %q", cfg.MetricsAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "postgres")
	t.Setenv("PLAYBACK_INTERVAL_MS", "250")
	t.Setenv("HISTOGRAM_BINS", "not-a-number")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "sales")
	for _, key := range []string{"POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_SSLMODE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DataSource != "postgres" {
		t.Errorf("source: got %q", cfg.DataSource)
	}
	if cfg.PlaybackInterval() != 250*time.Millisecond {
		t.Errorf("interval: got %v", cfg.PlaybackInterval())
	}
	if cfg.HistogramBins != 30 {
		t.Errorf("invalid int should fall back, got %d", cfg.HistogramBins)
	}
	want := "host=db port=5432 user=housing password=housing123 dbname=sales sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("dsn:\n got %q\nwant %q", got, want)
	}
}

func TestPlaybackIntervalFallback(t *testing.T) {
	cfg := &Config{PlaybackIntervalMs: 0}
	if cfg.PlaybackInterval() != 2*time.Second {
		t.Errorf("got %v", cfg.PlaybackInterval())
	}
}
