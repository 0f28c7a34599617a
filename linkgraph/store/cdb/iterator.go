package cdb

import (
	"database/sql"

	"github.com/citerank/citerank/linkgraph"
	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

// recordIterator is a linkgraph.RecordIterator implementation for the cdb
// store.
type recordIterator struct {
	rows          *sql.Rows
	lastErr       error
	latchedRecord *linkgraph.Record
}

// Next implements linkgraph.RecordIterator.
func (i *recordIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	rec := new(linkgraph.Record)
	var sources pq.Int64Array
	i.lastErr = i.rows.Scan(&rec.Target, &sources)
	if i.lastErr != nil {
		return false
	}
	rec.Sources = []int64(sources)

	i.latchedRecord = rec
	return true
}

// Error implements linkgraph.RecordIterator.
func (i *recordIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

// Close implements linkgraph.RecordIterator.
func (i *recordIterator) Close() error {
	err := i.rows.Close()
	if err != nil {
		return xerrors.Errorf("record iterator: %w", err)
	}
	return nil
}

// Record implements linkgraph.RecordIterator.
func (i *recordIterator) Record() *linkgraph.Record {
	return i.latchedRecord
}
