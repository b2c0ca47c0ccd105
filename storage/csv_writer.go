package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

var csvHeader = []string{
	"neighborhood", "sale_date", "year", "condition", "living_area", "price",
}

// CSVWriter exports filtered subsets to a CSV file, replacing its content
// on every snapshot. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	path   string
	logger *utils.Logger
}

// NewCSVWriter creates the output directory for path.
func NewCSVWriter(path string, logger *utils.Logger) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{path: path, logger: logger}, nil
}

// WriteSubset replaces the file with the header and one row per record.
func (c *CSVWriter) WriteSubset(records []*models.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tmp := c.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Category,
			r.SaleDate,
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Condition),
			strconv.FormatFloat(r.LivingArea, 'f', -1, 64),
			strconv.FormatFloat(r.Price, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csv: close: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("csv: replace %q: %w", c.path, err)
	}
	return nil
}

// Render exports the snapshot's subset, logging failures.
func (c *CSVWriter) Render(snap models.Snapshot) {
	if err := c.WriteSubset(snap.Subset); err != nil {
		c.logger.Error("[csv] Export failed: %v", err)
		return
	}
	c.logger.Debug("[csv] Exported %d records to %s", len(snap.Subset), c.path)
}

// Path returns the output file path.
func (c *CSVWriter) Path() string { return c.path }
