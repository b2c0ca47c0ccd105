package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"housing-dashboard/models"
	"housing-dashboard/utils"
)

const insertBatchSize = 200

// PostgresStore persists cleaned sale records in the house_sales table and
// serves them back as a RecordSource.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to answer,
// runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	err = retry.Do(ctx, "postgres-ping", func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS house_sales (
			id           SERIAL PRIMARY KEY,
			neighborhood TEXT          NOT NULL,
			sale_date    TEXT          NOT NULL DEFAULT '',
			year_sold    INTEGER       NOT NULL,
			overall_cond SMALLINT      NOT NULL CHECK (overall_cond BETWEEN 1 AND 9),
			gr_liv_area  NUMERIC(10,2) NOT NULL DEFAULT 0,
			sale_price   NUMERIC(12,2) NOT NULL CHECK (sale_price > 0)
		);

		CREATE INDEX IF NOT EXISTS idx_house_sales_neighborhood ON house_sales(neighborhood);
		CREATE INDEX IF NOT EXISTS idx_house_sales_year         ON house_sales(year_sold);
		CREATE INDEX IF NOT EXISTS idx_house_sales_price        ON house_sales(sale_price);
	`)
	return err
}

// Clear deletes all existing sales from the table.
func (ps *PostgresStore) Clear(ctx context.Context) error {
	if _, err := ps.db.ExecContext(ctx, "DELETE FROM house_sales"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the stored dataset with records inside one transaction.
func (ps *PostgresStore) Write(ctx context.Context, records []*models.Record) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM house_sales"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(records); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := insertBatch(ctx, tx, records[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, batch []*models.Record) error {
	query, args := buildInsert(batch)
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// buildInsert renders a multi-row INSERT with positional parameters.
func buildInsert(batch []*models.Record) (string, []interface{}) {
	const cols = 6
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			r.Category, r.SaleDate, r.Year, r.Condition, r.LivingArea, r.Price)
	}

	query := fmt.Sprintf(`
		INSERT INTO house_sales (neighborhood, sale_date, year_sold, overall_cond, gr_liv_area, sale_price)
		VALUES %s
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// Load retrieves all stored sales in insertion order.
func (ps *PostgresStore) Load(ctx context.Context) ([]*models.Record, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT id, neighborhood, sale_date, year_sold, overall_cond, gr_liv_area, sale_price
		FROM house_sales
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		r := &models.Record{}
		if err := rows.Scan(
			&r.ID, &r.Category, &r.SaleDate, &r.Year,
			&r.Condition, &r.LivingArea, &r.Price,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
