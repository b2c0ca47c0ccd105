package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"housing-dashboard/models"
	"housing-dashboard/services"
)

// JSONSource reads the sales data file: a JSON array of raw rows.
type JSONSource struct {
	path    string
	cleaner *services.Cleaner
}

// NewJSONSource creates a source reading path and cleaning rows with cleaner.
func NewJSONSource(path string, cleaner *services.Cleaner) *JSONSource {
	return &JSONSource{path: path, cleaner: cleaner}
}

// Load reads and cleans every row of the file.
func (s *JSONSource) Load(ctx context.Context) ([]*models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("json: open %q: %w", s.path, err)
	}
	defer f.Close()

	raw, err := DecodeRaw(f)
	if err != nil {
		return nil, fmt.Errorf("json: %q: %w", s.path, err)
	}
	return s.cleaner.Clean(raw), nil
}

// DecodeRaw decodes a JSON array of raw rows.
func DecodeRaw(r io.Reader) ([]*models.RawRecord, error) {
	var rows []*models.RawRecord
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return rows, nil
}
