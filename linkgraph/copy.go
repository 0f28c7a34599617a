package linkgraph

import "golang.org/x/xerrors"

// Copy upserts every record produced by it into dst and closes the iterator.
// It returns the number of copied records.
func Copy(dst Store, it RecordIterator) (int, error) {
	var n int
	for it.Next() {
		if err := dst.UpsertRecord(it.Record()); err != nil {
			_ = it.Close()
			return n, xerrors.Errorf("copy record for target %d: %w", it.Record().Target, err)
		}
		n++
	}
	if err := it.Error(); err != nil {
		_ = it.Close()
		return n, err
	}
	return n, it.Close()
}
