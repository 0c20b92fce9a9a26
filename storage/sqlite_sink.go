package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

// SQLiteSink persists car records to a local SQLite database. It is the
// default record sink backend.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (or creates) the database at path, verifies the
// connection and runs schema migrations.
func NewSQLiteSink(path string, logger *utils.Logger) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	retry := &utils.RetryConfig{Attempts: 3, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do("sqlite-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: %w", err)
	}

	s := &SQLiteSink{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteSink) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cars (
			id            TEXT PRIMARY KEY,
			condition     TEXT,
			manufacturer  TEXT,
			model         TEXT,
			badge         TEXT,
			transmission  TEXT,
			fuel_type     TEXT,
			year          REAL,
			form_year     TEXT,
			mileage       REAL,
			price         REAL,
			sell_type     TEXT,
			modified_date TEXT,
			collected_at  TEXT
		)
	`)
	return err
}

// UpsertBatch writes every record with a non-empty identifier, replacing any
// existing row with the same id. The batch runs in one transaction: a
// statement failure rolls everything back and reports zero rows written.
func (s *SQLiteSink) UpsertBatch(records []*models.CarRecord, collectedAt time.Time) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO cars
		(id, condition, manufacturer, model, badge, transmission, fuel_type,
		 year, form_year, mileage, price, sell_type, modified_date, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare upsert: %w", err)
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
			rec.Mileage, rec.Price, rec.SellType, rec.ModifiedDate,
			collectedAt.Format(time.RFC3339),
		)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: upsert id %s: %w", rec.ID, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return saved, nil
}

// FetchAll retrieves all stored records — used by the insight service.
func (s *SQLiteSink) FetchAll() ([]*models.CarRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, COALESCE(condition, ''), COALESCE(manufacturer, ''),
		       COALESCE(model, ''), COALESCE(badge, ''), COALESCE(transmission, ''),
		       COALESCE(fuel_type, ''), COALESCE(year, 0), COALESCE(form_year, ''),
		       COALESCE(mileage, 0), COALESCE(price, 0), COALESCE(sell_type, ''),
		       COALESCE(modified_date, ''), COALESCE(collected_at, '')
		FROM cars
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetch all: %w", err)
	}
	defer rows.Close()

	var records []*models.CarRecord
	for rows.Next() {
		rec := &models.CarRecord{}
		var collectedAt string
		if err := rows.Scan(
			&rec.ID, &rec.Condition, &rec.Manufacturer, &rec.Model, &rec.Badge,
			&rec.Transmission, &rec.FuelType, &rec.Year, &rec.FormYear,
			&rec.Mileage, &rec.Price, &rec.SellType, &rec.ModifiedDate, &collectedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan row: %w", err)
		}
		rec.CollectedAt, _ = time.Parse(time.RFC3339, collectedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
