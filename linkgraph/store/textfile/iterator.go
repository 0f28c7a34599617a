package textfile

import (
	"bufio"
	"io"

	"github.com/citerank/citerank/linkgraph"
	"golang.org/x/xerrors"
)

// Lines in citation datasets can list tens of thousands of sources.
const maxLineSize = 64 * 1024 * 1024

// recordIterator is a linkgraph.RecordIterator implementation that parses
// records from a line-oriented text stream.
type recordIterator struct {
	scanner *bufio.Scanner
	closer  io.Closer

	lineNum       int
	lastErr       error
	latchedRecord *linkgraph.Record
}

func newRecordIterator(r io.Reader, closer io.Closer) *recordIterator {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &recordIterator{scanner: scanner, closer: closer}
}

// Next implements linkgraph.RecordIterator.
func (i *recordIterator) Next() bool {
	if i.lastErr != nil {
		return false
	}

	for i.scanner.Scan() {
		i.lineNum++
		rec, err := linkgraph.ParseRecord(i.scanner.Text())
		if err != nil {
			i.lastErr = xerrors.Errorf("line %d: %w", i.lineNum, err)
			return false
		} else if rec == nil {
			continue
		}

		i.latchedRecord = rec
		return true
	}

	if err := i.scanner.Err(); err != nil {
		i.lastErr = xerrors.Errorf("line %d: %w", i.lineNum+1, err)
	}
	return false
}

// Error implements linkgraph.RecordIterator.
func (i *recordIterator) Error() error {
	return i.lastErr
}

// Close implements linkgraph.RecordIterator.
func (i *recordIterator) Close() error {
	if i.closer == nil {
		return nil
	}
	if err := i.closer.Close(); err != nil {
		return xerrors.Errorf("record iterator: %w", err)
	}
	return nil
}

// Record implements linkgraph.RecordIterator.
func (i *recordIterator) Record() *linkgraph.Record {
	return i.latchedRecord
}
