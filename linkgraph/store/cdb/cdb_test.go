package cdb

import (
	"database/sql"
	"os"
	"testing"

	"github.com/citerank/citerank/linkgraph/linkgraphtest"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(CockroachDBStoreTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type CockroachDBStoreTestSuite struct {
	linkgraphtest.SuiteBase
	db *sql.DB
}

func (s *CockroachDBStoreTestSuite) SetUpSuite(c *gc.C) {
	dsn := os.Getenv("CDB_DSN")
	if dsn == "" {
		c.Skip("Missing CDB_DSN envvar; skipping cockroachdb-backed link record store test suite")
	}

	store, err := NewCockroachDBStore(dsn)
	c.Assert(err, gc.IsNil)
	c.Assert(store.EnsureSchema(), gc.IsNil)

	s.SetStore(store)
	s.db = store.db
}

func (s *CockroachDBStoreTestSuite) SetUpTest(c *gc.C) {
	s.flushDB(c)
}

func (s *CockroachDBStoreTestSuite) TearDownSuite(c *gc.C) {
	if s.db != nil {
		s.flushDB(c)
		c.Assert(s.db.Close(), gc.IsNil)
	}
}

func (s *CockroachDBStoreTestSuite) flushDB(c *gc.C) {
	_, err := s.db.Exec("DELETE FROM link_records")
	c.Assert(err, gc.IsNil)
}
