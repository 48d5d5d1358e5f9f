package dashboard

import (
	"sort"
	"sync"
)

// Keyed is any record with a stable numeric identity.
type Keyed interface {
	Key() int64
}

// RecordSet is the single reconciliation point for one list view. Poll
// snapshots and push inserts both land here; snapshots are ordered by a
// generation counter so a late response can never overwrite a newer one.
type RecordSet[T Keyed] struct {
	mu      sync.RWMutex
	byKey   map[int64]T
	gen     uint64
	applied uint64
	loaded  bool
}

// NewRecordSet returns an empty set.
func NewRecordSet[T Keyed]() *RecordSet[T] {
	return &RecordSet[T]{byKey: make(map[int64]T)}
}

// NextGen reserves a generation number. Call before issuing the fetch whose
// result will be applied with ApplySnapshot.
func (s *RecordSet[T]) NextGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// ApplySnapshot replaces the set's contents with an authoritative snapshot.
// A snapshot older than one already applied is discarded; the return value
// reports whether the snapshot took effect.
func (s *RecordSet[T]) ApplySnapshot(gen uint64, records []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.applied {
		return false
	}
	s.applied = gen
	s.loaded = true
	s.byKey = make(map[int64]T, len(records))
	for _, r := range records {
		s.byKey[r.Key()] = r
	}
	return true
}

// InsertIfAbsent adds a pushed record unless it is already present, making
// duplicate push events idempotent. The next snapshot remains authoritative.
func (s *RecordSet[T]) InsertIfAbsent(r T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byKey[r.Key()]; ok {
		return false
	}
	s.byKey[r.Key()] = r
	return true
}

// Upsert stores a record unconditionally, for push updates carrying the full
// record state.
func (s *RecordSet[T]) Upsert(r T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[r.Key()] = r
}

// Remove drops a record by key.
func (s *RecordSet[T]) Remove(key int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byKey, key)
}

// Invalidate discards every snapshot currently in flight. Local mutations
// call it so a list fetch that started before the mutation cannot undo it
// when its response lands.
func (s *RecordSet[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = s.gen
}

// Clear empties the set, as when the view's owner goes offline.
func (s *RecordSet[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey = make(map[int64]T)
	s.loaded = false
}

// Get returns the record for key.
func (s *RecordSet[T]) Get(key int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byKey[key]
	return r, ok
}

// Loaded reports whether at least one snapshot has been applied since the
// set was created or cleared. Views distinguish "loading" from "empty" on it.
func (s *RecordSet[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len returns the current record count.
func (s *RecordSet[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// All returns the records sorted by key descending, newest-first for views
// whose IDs grow monotonically.
func (s *RecordSet[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.byKey))
	for _, r := range s.byKey {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() > out[j].Key() })
	return out
}
