package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MICROWAVE-web/EncarParsing/models"
	"github.com/MICROWAVE-web/EncarParsing/utils"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	return NewJSONStore(path, utils.NewLogger(""))
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := newTestStore(t)
	set := store.Load()
	if set.Len() != 0 {
		t.Errorf("expected empty set for missing file, got %d entries", set.Len())
	}
}

func TestJSONStoreLoadMalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not json at all"},
		{"not an array", `{"id": 1}`},
	}

	for _, tt := range tests {
		store := newTestStore(t)
		if err := os.WriteFile(store.path, []byte(tt.content), 0644); err != nil {
			t.Fatalf("%s: write fixture: %v", tt.name, err)
		}
		if set := store.Load(); set.Len() != 0 {
			t.Errorf("%s: expected empty set, got %d entries", tt.name, set.Len())
		}
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	set := models.NewCollectedSet()
	set.Add("34812733", int64(34812733))
	set.Add("ab-12", "ab-12")
	set.Add("7", int64(7))

	if err := store.Save(set); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := store.Load()
	if loaded.Len() != 3 {
		t.Fatalf("loaded %d entries, want 3", loaded.Len())
	}
	for _, key := range []string{"34812733", "ab-12", "7"} {
		if !loaded.Contains(key) {
			t.Errorf("loaded set missing key %q", key)
		}
	}

	entries := loaded.Entries()
	want := []any{int64(34812733), "ab-12", int64(7)}
	for i, e := range entries {
		if e.ID != want[i] {
			t.Errorf("entries[%d] = %v (%T), want %v (%T)", i, e.ID, e.ID, want[i], want[i])
		}
	}
}

func TestJSONStoreSaveIsHumanReadableArray(t *testing.T) {
	store := newTestStore(t)

	set := models.NewCollectedSet()
	set.Add("5", int64(5))
	if err := store.Save(set); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("saved file is not a JSON array of objects: %v", err)
	}
	if len(raw) != 1 || raw[0]["id"] != float64(5) {
		t.Errorf("unexpected file contents: %s", data)
	}
}

// Old files spelled the field "Id"; both spellings must load.
func TestJSONStoreLoadLegacyFieldName(t *testing.T) {
	store := newTestStore(t)
	content := `[{"Id": 11}, {"id": 22}, {"id": ""}, {"other": 1}]`
	if err := os.WriteFile(store.path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	set := store.Load()
	if set.Len() != 2 {
		t.Fatalf("loaded %d entries, want 2", set.Len())
	}
	if !set.Contains("11") || !set.Contains("22") {
		t.Error("expected keys 11 and 22 to be loaded")
	}
}

func TestJSONStoreSaveEmptySet(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(models.NewCollectedSet()); err != nil {
		t.Fatalf("save empty set: %v", err)
	}

	data, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("saved empty set is not a JSON array: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("expected empty array, got %s", data)
	}
}
