package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/services"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

// JSONStore keeps the flat identifier list in a human-readable JSON array of
// {"id": <int|string>} objects, rewritten wholesale on every productive save.
type JSONStore struct {
	path   string
	logger *utils.Logger
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string, logger *utils.Logger) *JSONStore {
	return &JSONStore{path: path, logger: logger}
}

// Load reads the results file into a CollectedSet. A missing, unreadable or
// malformed file yields an empty set with a warning, never an error: the
// crawl simply starts from scratch. Entries may carry the identifier under
// "id" or "Id"; entries that fail normalization are skipped.
func (s *JSONStore) Load() *models.CollectedSet {
	set := models.NewCollectedSet()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("[store] Results file %s not found, starting empty", s.path)
		} else {
			s.logger.Warn("[store] Could not read %s: %v — starting empty", s.path, err)
		}
		return set
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("[store] Invalid format in %s (expected an array): %v — starting empty", s.path, err)
		return set
	}

	for _, entry := range entries {
		raw, present := entry["id"]
		if !present {
			raw = entry["Id"]
		}
		key, stored, ok := services.NormalizeID(raw)
		if !ok {
			continue
		}
		set.Add(key, stored)
	}

	s.logger.Info("[store] Loaded %d existing entries from %s", set.Len(), s.path)
	return set
}

// Save rewrites the whole results file from the set, preserving insertion
// order. The write goes to a temp file first and is swapped in with a rename.
func (s *JSONStore) Save(set *models.CollectedSet) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("store: create output dir: %w", err)
		}
	}

	entries := set.Entries()
	if entries == nil {
		entries = []models.IDEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal results: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", s.path, err)
	}

	s.logger.Info("[store] Updated %s (total entries: %d)", s.path, set.Len())
	return nil
}
