package memory

import "github.com/citerank/citerank/linkgraph"

// recordIterator is a linkgraph.RecordIterator implementation for the
// in-memory store.
type recordIterator struct {
	s *InMemoryStore

	records  []*linkgraph.Record
	curIndex int
}

// Next implements linkgraph.RecordIterator.
func (i *recordIterator) Next() bool {
	if i.curIndex >= len(i.records) {
		return false
	}
	i.curIndex++
	return true
}

// Error implements linkgraph.RecordIterator.
func (i *recordIterator) Error() error {
	return nil
}

// Close implements linkgraph.RecordIterator.
func (i *recordIterator) Close() error {
	return nil
}

// Record implements linkgraph.RecordIterator.
func (i *recordIterator) Record() *linkgraph.Record {
	// The record may be replaced by a concurrent upsert; to avoid data-races
	// we acquire the read lock first and clone it.
	i.s.mu.RLock()
	src := i.records[i.curIndex-1]
	rec := &linkgraph.Record{
		Target:  src.Target,
		Sources: append([]int64(nil), src.Sources...),
	}
	i.s.mu.RUnlock()
	return rec
}
