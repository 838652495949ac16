// Package feed holds the session's processed notes, newest first.
package feed

import (
	"sync"

	"mindflow/internal/notes"
)

// Store is an in-memory, newest-first list of feed records. It has no cap
// and no eviction; it lives as long as the session.
type Store struct {
	mu      sync.RWMutex
	records []notes.FeedRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Append inserts the record at the front of the feed
func (s *Store) Append(r notes.FeedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, notes.FeedRecord{})
	copy(s.records[1:], s.records)
	s.records[0] = r
}

// List returns the records matching f in store order. The returned slice is
// a copy and safe to keep.
func (s *Store) List(f Filter) []notes.FeedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []notes.FeedRecord
	for _, r := range s.records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of stored records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Counts returns the number of records per filter, for sidebar badges
func (s *Store) Counts() map[Filter]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Filter]int, len(Filters))
	counts[FilterAll] = len(s.records)
	counts[FilterInsight] = len(s.records)
	for _, r := range s.records {
		counts[Filter(r.Payload.Classification)]++
	}
	return counts
}
