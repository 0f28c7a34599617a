package linkgraph

// Iterator is implemented by objects that can be iterated.
type Iterator interface {
	// Next advances the iterator. If no more items are available or an
	// error occurs, calls to Next() return false.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources associated with an iterator.
	Close() error
}

// RecordIterator is implemented by objects that can iterate link records.
type RecordIterator interface {
	Iterator

	// Record returns the currently fetched link record.
	Record() *Record
}

// Record describes a single line of link data: the Target page is linked to
// by every page in Sources.
type Record struct {
	// The page being linked to.
	Target int64

	// The pages linking to Target in the order they were listed. The list
	// may contain duplicates; each occurrence counts as a separate out-link
	// of the source page.
	Sources []int64
}

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/citerank/citerank/linkgraph Source,RecordIterator

// Source is implemented by objects that can provide link records.
type Source interface {
	// Records returns an iterator over all link records known to the
	// source. Implementations return ErrNotFound if the underlying data
	// cannot be located.
	Records() (RecordIterator, error)
}

// Store is implemented by link record sources that also support updates.
type Store interface {
	Source

	// UpsertRecord stores a link record. Any previously stored record for
	// the same target is replaced.
	UpsertRecord(rec *Record) error
}
