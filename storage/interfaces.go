package storage

import (
	"time"

	"github.com/MICROWAVE-web/EncarParsing/models"
)

// ResultStore persists the deduplicated identifier list. Load is the sole
// source of truth for resuming a crawl; no reconciliation against the record
// sink is performed.
type ResultStore interface {
	Load() *models.CollectedSet
	Save(set *models.CollectedSet) error
}

// RecordSink is the interface any record storage backend must satisfy.
// Records are keyed by identifier; conflicting keys are fully replaced.
type RecordSink interface {
	UpsertBatch(records []*models.CarRecord, collectedAt time.Time) (int, error)
	FetchAll() ([]*models.CarRecord, error)
	Close() error
}
