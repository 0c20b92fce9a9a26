package models

import "testing"

func TestCollectedSetAdd(t *testing.T) {
	s := NewCollectedSet()

	if !s.Add("1", int64(1)) {
		t.Error("first Add should return true")
	}
	if s.Add("1", int64(1)) {
		t.Error("second Add of same key should return false")
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
	if !s.Contains("1") {
		t.Error("Contains should report an added key")
	}
}

func TestCollectedSetInsertionOrder(t *testing.T) {
	s := NewCollectedSet()
	s.Add("3", int64(3))
	s.Add("1", int64(1))
	s.Add("3", int64(3))
	s.Add("2", int64(2))

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries: got %d, want 3", len(entries))
	}
	want := []int64{3, 1, 2}
	for i, e := range entries {
		if e.ID != want[i] {
			t.Errorf("entries[%d] = %v, want %d", i, e.ID, want[i])
		}
	}
}

// Keys differing only in leading zeros are not deduplicated against each
// other: both end up in the sequence.
func TestCollectedSetLeadingZeroKeys(t *testing.T) {
	s := NewCollectedSet()
	if !s.Add("00042", int64(42)) {
		t.Error("adding key 00042 should succeed")
	}
	if !s.Add("42", int64(42)) {
		t.Error("adding key 42 should succeed despite equal stored value")
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
}
