package linkgraphtest

import (
	"sort"

	"github.com/citerank/citerank/linkgraph"
	gc "gopkg.in/check.v1"
)

// SuiteBase defines a re-usable set of link record store tests that can be
// executed against any type that implements linkgraph.Store.
type SuiteBase struct {
	s linkgraph.Store
}

// SetStore configures the test-suite to run all tests against s.
func (s *SuiteBase) SetStore(store linkgraph.Store) {
	s.s = store
}

// TestUpsertRecords verifies that upserted records can be iterated.
func (s *SuiteBase) TestUpsertRecords(c *gc.C) {
	exp := []linkgraph.Record{
		{Target: 1, Sources: []int64{2, 3}},
		{Target: 2, Sources: []int64{1}},
		{Target: 3, Sources: []int64{}},
	}
	for i := range exp {
		c.Assert(s.s.UpsertRecord(&exp[i]), gc.IsNil)
	}

	c.Assert(s.collect(c), gc.DeepEquals, exp)
}

// TestUpsertReplacesRecord verifies that upserting a record for an existing
// target replaces its source list instead of merging it.
func (s *SuiteBase) TestUpsertReplacesRecord(c *gc.C) {
	c.Assert(s.s.UpsertRecord(&linkgraph.Record{Target: 7, Sources: []int64{1, 2}}), gc.IsNil)
	c.Assert(s.s.UpsertRecord(&linkgraph.Record{Target: 7, Sources: []int64{3}}), gc.IsNil)

	c.Assert(s.collect(c), gc.DeepEquals, []linkgraph.Record{
		{Target: 7, Sources: []int64{3}},
	})
}

// TestDuplicateSourcesArePreserved verifies that stores keep repeated source
// IDs since each occurrence counts as a separate out-link.
func (s *SuiteBase) TestDuplicateSourcesArePreserved(c *gc.C) {
	c.Assert(s.s.UpsertRecord(&linkgraph.Record{Target: 1, Sources: []int64{2, 2, 4, 2}}), gc.IsNil)

	c.Assert(s.collect(c), gc.DeepEquals, []linkgraph.Record{
		{Target: 1, Sources: []int64{2, 2, 4, 2}},
	})
}

// TestRecordsFromEmptyStore verifies that iterating an empty store yields no
// records.
func (s *SuiteBase) TestRecordsFromEmptyStore(c *gc.C) {
	c.Assert(s.collect(c), gc.HasLen, 0)
}

// TestRecordsKeepFirstInsertionOrder verifies that records are returned in
// the order their targets were first inserted, even after being replaced.
func (s *SuiteBase) TestRecordsKeepFirstInsertionOrder(c *gc.C) {
	for _, target := range []int64{5, 2, 9} {
		c.Assert(s.s.UpsertRecord(&linkgraph.Record{Target: target, Sources: []int64{1}}), gc.IsNil)
	}
	c.Assert(s.s.UpsertRecord(&linkgraph.Record{Target: 2, Sources: []int64{3}}), gc.IsNil)

	c.Assert(s.drain(c), gc.DeepEquals, []linkgraph.Record{
		{Target: 5, Sources: []int64{1}},
		{Target: 2, Sources: []int64{3}},
		{Target: 9, Sources: []int64{1}},
	})
}

// collect drains all records from the store, sorted by target.
func (s *SuiteBase) collect(c *gc.C) []linkgraph.Record {
	out := s.drain(c)
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

// drain returns all records from the store in iteration order.
func (s *SuiteBase) drain(c *gc.C) []linkgraph.Record {
	it, err := s.s.Records()
	c.Assert(err, gc.IsNil)

	out := []linkgraph.Record{}
	for it.Next() {
		rec := *it.Record()
		if rec.Sources == nil {
			rec.Sources = []int64{}
		}
		out = append(out, rec)
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	return out
}
