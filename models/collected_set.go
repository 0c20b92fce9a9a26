package models

// IDEntry is one element of the flat results file: {"id": <int|string>}.
type IDEntry struct {
	ID any `json:"id"`
}

// CollectedSet tracks every listing identifier seen so far: an ordered
// sequence of entries for the results file plus a set of canonical string
// keys for membership tests. The crawl runs on a single goroutine, so no
// locking is needed.
type CollectedSet struct {
	entries []IDEntry
	seen    map[string]struct{}
}

// NewCollectedSet returns an empty set.
func NewCollectedSet() *CollectedSet {
	return &CollectedSet{seen: make(map[string]struct{})}
}

// Add records the identifier under its canonical key. It returns true if the
// key was new, false if it was already present (the entry list is unchanged).
func (s *CollectedSet) Add(key string, stored any) bool {
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	s.entries = append(s.entries, IDEntry{ID: stored})
	return true
}

// Contains reports whether the canonical key has been seen.
func (s *CollectedSet) Contains(key string) bool {
	_, exists := s.seen[key]
	return exists
}

// Len returns the number of distinct identifiers collected.
func (s *CollectedSet) Len() int {
	return len(s.entries)
}

// Entries returns the collected identifiers in insertion order.
func (s *CollectedSet) Entries() []IDEntry {
	return s.entries
}
