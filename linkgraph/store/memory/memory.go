package memory

import (
	"sync"

	"github.com/citerank/citerank/linkgraph"
)

// Compile-time check for ensuring InMemoryStore implements linkgraph.Store.
var _ linkgraph.Store = (*InMemoryStore)(nil)

// InMemoryStore implements an in-memory link record store that can be
// concurrently accessed. Records are returned in the order their targets were
// first inserted.
type InMemoryStore struct {
	mu sync.RWMutex

	records map[int64]*linkgraph.Record
	order   []int64
}

// NewInMemoryStore creates a new in-memory link record store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[int64]*linkgraph.Record),
	}
}

// UpsertRecord implements linkgraph.Store.
func (s *InMemoryStore) UpsertRecord(rec *linkgraph.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.Target]; !exists {
		s.order = append(s.order, rec.Target)
	}

	rCopy := &linkgraph.Record{
		Target:  rec.Target,
		Sources: append([]int64(nil), rec.Sources...),
	}
	s.records[rec.Target] = rCopy
	return nil
}

// Records implements linkgraph.Source.
func (s *InMemoryStore) Records() (linkgraph.RecordIterator, error) {
	s.mu.RLock()
	list := make([]*linkgraph.Record, 0, len(s.order))
	for _, target := range s.order {
		list = append(list, s.records[target])
	}
	s.mu.RUnlock()

	return &recordIterator{s: s, records: list}, nil
}
