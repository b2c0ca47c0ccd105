package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataSource string
	DataPath   string
	OutputDir  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	PlaybackIntervalMs int
	PriceStep          int
	HistogramBins      int
	RenderConcurrency  int
	MaxRetries         int

	ChromeBin   string
	MetricsAddr string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataSource: getEnv("DATA_SOURCE", "json"),
		DataPath:   getEnv("DATA_PATH", "./data.json"),
		OutputDir:  getEnv("OUTPUT_DIR", "./output"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "housing"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "housing123"),
		PostgresDB:       getEnv("POSTGRES_DB", "housing_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		PlaybackIntervalMs: getEnvInt("PLAYBACK_INTERVAL_MS", 2000),
		PriceStep:          getEnvInt("PRICE_STEP", 1000),
		HistogramBins:      getEnvInt("HISTOGRAM_BINS", 30),
		RenderConcurrency:  getEnvInt("RENDER_CONCURRENCY", 4),
		MaxRetries:         getEnvInt("MAX_RETRIES", 3),

		ChromeBin:   getEnv("CHROME_BIN", ""),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// PlaybackInterval returns the pause between playback ticks. Non-positive
// values fall back to two seconds.
func (c *Config) PlaybackInterval() time.Duration {
	if c.PlaybackIntervalMs <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.PlaybackIntervalMs) * time.Millisecond
}

// CSVPath is where the filtered subset is exported.
func (c *Config) CSVPath() string {
	return filepath.Join(c.OutputDir, "subset.csv")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
