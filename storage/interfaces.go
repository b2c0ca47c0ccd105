package storage

import (
	"context"

	"housing-dashboard/models"
)

// RecordSource is the interface any data source must satisfy.
type RecordSource interface {
	Load(ctx context.Context) ([]*models.Record, error)
}

// RecordWriter is the interface for persisting cleaned records.
type RecordWriter interface {
	Write(ctx context.Context, records []*models.Record) error
	Close() error
}
