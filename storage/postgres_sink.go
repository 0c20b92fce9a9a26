package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

// PostgresSink persists car records to PostgreSQL. It is the alternative
// record sink backend for deployments that already run a shared database.
type PostgresSink struct {
	db *sql.DB
}

// NewPostgresSink opens a connection to PostgreSQL, waits for the server to
// become reachable and runs schema migrations.
func NewPostgresSink(dsn string, logger *utils.Logger) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{Attempts: 10, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	s := &PostgresSink{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return s, nil
}

func (s *PostgresSink) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cars (
			id            TEXT PRIMARY KEY,
			condition     TEXT,
			manufacturer  TEXT,
			model         TEXT,
			badge         TEXT,
			transmission  TEXT,
			fuel_type     TEXT,
			year          DOUBLE PRECISION,
			form_year     TEXT,
			mileage       DOUBLE PRECISION,
			price         DOUBLE PRECISION,
			sell_type     TEXT,
			modified_date TEXT,
			collected_at  TIMESTAMPTZ
		);

		CREATE INDEX IF NOT EXISTS idx_cars_manufacturer ON cars(manufacturer);
		CREATE INDEX IF NOT EXISTS idx_cars_year         ON cars(year);
		CREATE INDEX IF NOT EXISTS idx_cars_price        ON cars(price);
	`)
	return err
}

// UpsertBatch writes every record with a non-empty identifier, fully
// replacing any existing row with the same id. One transaction per batch.
func (s *PostgresSink) UpsertBatch(records []*models.CarRecord, collectedAt time.Time) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO cars
		(id, condition, manufacturer, model, badge, transmission, fuel_type,
		 year, form_year, mileage, price, sell_type, modified_date, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			condition     = EXCLUDED.condition,
			manufacturer  = EXCLUDED.manufacturer,
			model         = EXCLUDED.model,
			badge         = EXCLUDED.badge,
			transmission  = EXCLUDED.transmission,
			fuel_type     = EXCLUDED.fuel_type,
			year          = EXCLUDED.year,
			form_year     = EXCLUDED.form_year,
			mileage       = EXCLUDED.mileage,
			price         = EXCLUDED.price,
			sell_type     = EXCLUDED.sell_type,
			modified_date = EXCLUDED.modified_date,
			collected_at  = EXCLUDED.collected_at
	`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("postgres: prepare upsert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		_, err := stmt.Exec(
			rec.ID, nullIfEmpty(rec.Condition), rec.Manufacturer, rec.Model,
			rec.Badge, rec.Transmission, rec.FuelType, rec.Year, rec.FormYear,
			rec.Mileage, rec.Price, rec.SellType, rec.ModifiedDate, collectedAt,
		)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("postgres: upsert id %s: %w", rec.ID, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return saved, nil
}

// FetchAll retrieves all stored records — used by the insight service.
func (s *PostgresSink) FetchAll() ([]*models.CarRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, COALESCE(condition, ''), COALESCE(manufacturer, ''),
		       COALESCE(model, ''), COALESCE(badge, ''), COALESCE(transmission, ''),
		       COALESCE(fuel_type, ''), COALESCE(year, 0), COALESCE(form_year, ''),
		       COALESCE(mileage, 0), COALESCE(price, 0), COALESCE(sell_type, ''),
		       COALESCE(modified_date, ''), collected_at
		FROM cars
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []*models.CarRecord
	for rows.Next() {
		rec := &models.CarRecord{}
		var collectedAt sql.NullTime
		if err := rows.Scan(
			&rec.ID, &rec.Condition, &rec.Manufacturer, &rec.Model, &rec.Badge,
			&rec.Transmission, &rec.FuelType, &rec.Year, &rec.FormYear,
			&rec.Mileage, &rec.Price, &rec.SellType, &rec.ModifiedDate, &collectedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		rec.CollectedAt = collectedAt.Time
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}
