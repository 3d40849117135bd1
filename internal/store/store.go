// Package store holds the in-memory record collection, the single source
// of truth all views derive from.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/RahmadZikry/geodump/internal/core/model"
	"github.com/RahmadZikry/geodump/internal/observability"
)

var (
	// ErrDuplicateID rejects an insert whose id already exists.
	ErrDuplicateID = errors.New("duplicate record id")
	// ErrNotFound rejects an update or delete targeting an absent id.
	ErrNotFound = errors.New("record not found")
)

// Update carries the fields mutable through the edit flow. Identifier and
// coordinates are immutable post-creation; nil fields are left untouched.
type Update struct {
	Category  *model.Category
	Volume    *model.VolumeClass
	Proximity *string
	District  *string
}

// Store keeps records in most-recent-first order. All methods are safe
// for concurrent use; readers get copy-on-read snapshots.
type Store struct {
	mu      sync.RWMutex
	records []model.WasteRecord
	byID    map[string]int
	version uint64
}

func New() *Store {
	return &Store{byID: make(map[string]int)}
}

// Seed replaces the store contents with a bulk-loaded dataset, preserving
// the dataset's order. Duplicate ids within the dataset keep the first
// occurrence.
func (s *Store) Seed(records []model.WasteRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
	s.byID = make(map[string]int, len(records))
	for _, r := range records {
		if _, ok := s.byID[r.ID]; ok {
			continue
		}
		s.byID[r.ID] = len(s.records)
		s.records = append(s.records, r)
	}
	s.version++
	observability.SetRecordCount(len(s.records))
	return len(s.records)
}

// Insert adds the record at the head of the collection.
func (s *Store) Insert(r model.WasteRecord) error {
	if err := r.Validate(); err != nil {
		observability.ObserveStoreOp("insert", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[r.ID]; ok {
		observability.ObserveStoreOp("insert", ErrDuplicateID)
		return fmt.Errorf("insert %q: %w", r.ID, ErrDuplicateID)
	}

	s.records = append([]model.WasteRecord{r}, s.records...)
	s.byID = make(map[string]int, len(s.records))
	for i := range s.records {
		s.byID[s.records[i].ID] = i
	}
	s.version++
	observability.ObserveStoreOp("insert", nil)
	observability.SetRecordCount(len(s.records))
	return nil
}

// Apply merges the non-nil fields of u into the record with the given id.
// Applying the same update twice is idempotent.
func (s *Store) Apply(id string, u Update) (model.WasteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		observability.ObserveStoreOp("update", ErrNotFound)
		return model.WasteRecord{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}

	merged := s.records[i]
	if u.Category != nil {
		merged.Category = *u.Category
	}
	if u.Volume != nil {
		merged.Volume = *u.Volume
	}
	if u.Proximity != nil {
		merged.Proximity = *u.Proximity
	}
	if u.District != nil {
		merged.District = *u.District
	}
	if err := merged.Validate(); err != nil {
		observability.ObserveStoreOp("update", err)
		return model.WasteRecord{}, err
	}

	s.records[i] = merged
	s.version++
	observability.ObserveStoreOp("update", nil)
	return merged, nil
}

// Delete removes the record with the given id. Deleting twice fails the
// second time with ErrNotFound rather than silently succeeding.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		observability.ObserveStoreOp("delete", ErrNotFound)
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}

	s.records = append(s.records[:i], s.records[i+1:]...)
	delete(s.byID, id)
	for j := i; j < len(s.records); j++ {
		s.byID[s.records[j].ID] = j
	}
	s.version++
	observability.ObserveStoreOp("delete", nil)
	observability.SetRecordCount(len(s.records))
	return nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (model.WasteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return model.WasteRecord{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return s.records[i], nil
}

// All returns a snapshot of the full ordered collection. The slice is a
// copy; later store mutations do not reach through it.
func (s *Store) All() []model.WasteRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.WasteRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Version is a monotonic mutation counter used to key derived-view caches.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Districts returns the distinct district names, sorted, for filter facets.
func (s *Store) Districts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, 16)
	var out []string
	for i := range s.records {
		d := s.records[i].District
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
