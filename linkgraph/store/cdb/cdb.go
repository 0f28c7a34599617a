package cdb

import (
	"database/sql"

	"github.com/citerank/citerank/linkgraph"
	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

var (
	// Schema contains the DDL statement for creating the table that backs
	// the CockroachDB link record store.
	Schema = `
CREATE TABLE IF NOT EXISTS link_records (
	target INT8 PRIMARY KEY,
	seq INT8 NOT NULL,
	sources INT8[] NOT NULL
)
`

	upsertRecordQuery = `
INSERT INTO link_records (target, seq, sources)
VALUES ($1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM link_records), $2)
ON CONFLICT (target) DO UPDATE SET sources=excluded.sources
`
	recordsQuery = "SELECT target, sources FROM link_records ORDER BY seq"

	// Compile-time check for ensuring CockroachDBStore implements linkgraph.Store.
	_ linkgraph.Store = (*CockroachDBStore)(nil)
)

// CockroachDBStore implements a link record store that persists its records
// to a cockroachdb instance.
type CockroachDBStore struct {
	db *sql.DB
}

// NewCockroachDBStore returns a CockroachDBStore instance that connects to the
// cockroachdb instance specified by dsn.
func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	return &CockroachDBStore{db: db}, nil
}

// Close terminates the connection to the backing cockroachdb instance.
func (c *CockroachDBStore) Close() error {
	return c.db.Close()
}

// EnsureSchema creates the link_records table if it does not exist yet.
func (c *CockroachDBStore) EnsureSchema() error {
	if _, err := c.db.Exec(Schema); err != nil {
		return xerrors.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UpsertRecord creates a new link record or replaces the sources of an
// existing one. Replacing a record keeps its original position in the
// iteration order.
func (c *CockroachDBStore) UpsertRecord(rec *linkgraph.Record) error {
	sources := rec.Sources
	if sources == nil {
		sources = []int64{}
	}

	if _, err := c.db.Exec(upsertRecordQuery, rec.Target, pq.Array(sources)); err != nil {
		return xerrors.Errorf("upsert record: %w", err)
	}
	return nil
}

// Records returns an iterator for all stored link records in the order their
// targets were first inserted.
func (c *CockroachDBStore) Records() (linkgraph.RecordIterator, error) {
	rows, err := c.db.Query(recordsQuery)
	if err != nil {
		if isUndefinedTableError(err) {
			err = linkgraph.ErrNotFound
		}
		return nil, xerrors.Errorf("records: %w", err)
	}

	return &recordIterator{rows: rows}, nil
}

// isUndefinedTableError returns true if err indicates that the link_records
// table does not exist.
func isUndefinedTableError(err error) bool {
	pqErr, valid := err.(*pq.Error)
	if !valid {
		return false
	}

	return pqErr.Code.Name() == "undefined_table"
}
