package linkgraph_test

import (
	"testing"

	"github.com/citerank/citerank/linkgraph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ParseTestSuite))

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}

type ParseTestSuite struct{}

func (s *ParseTestSuite) TestParseRecord(c *gc.C) {
	specs := []struct {
		descr string
		line  string
		exp   *linkgraph.Record
	}{
		{
			descr: "target only",
			line:  "42",
			exp:   &linkgraph.Record{Target: 42, Sources: []int64{}},
		},
		{
			descr: "target with sources",
			line:  "1 2 3 4",
			exp:   &linkgraph.Record{Target: 1, Sources: []int64{2, 3, 4}},
		},
		{
			descr: "duplicate sources are kept",
			line:  "1 2 2",
			exp:   &linkgraph.Record{Target: 1, Sources: []int64{2, 2}},
		},
		{
			descr: "mixed whitespace",
			line:  " 7\t8   9 \r",
			exp:   &linkgraph.Record{Target: 7, Sources: []int64{8, 9}},
		},
		{
			descr: "negative ids",
			line:  "-1 -2",
			exp:   &linkgraph.Record{Target: -1, Sources: []int64{-2}},
		},
	}

	for specIndex, spec := range specs {
		c.Logf("[spec %d] %s", specIndex, spec.descr)
		rec, err := linkgraph.ParseRecord(spec.line)
		c.Assert(err, gc.IsNil)
		c.Assert(rec, gc.DeepEquals, spec.exp)
	}
}

func (s *ParseTestSuite) TestParseBlankLine(c *gc.C) {
	for _, line := range []string{"", "   ", "\t\r"} {
		rec, err := linkgraph.ParseRecord(line)
		c.Assert(err, gc.IsNil)
		c.Assert(rec, gc.IsNil)
	}
}

func (s *ParseTestSuite) TestParseMalformedRecord(c *gc.C) {
	for _, line := range []string{"a 1", "1 b", "1 2.5", "1 99999999999999999999"} {
		_, err := linkgraph.ParseRecord(line)
		c.Assert(xerrors.Is(err, linkgraph.ErrMalformedRecord), gc.Equals, true, gc.Commentf("line %q", line))
	}
}

func (s *ParseTestSuite) TestFormatRoundTrip(c *gc.C) {
	rec := &linkgraph.Record{Target: 10, Sources: []int64{3, 1, 3}}
	c.Assert(rec.Format(), gc.Equals, "10 3 1 3")

	got, err := linkgraph.ParseRecord(rec.Format())
	c.Assert(err, gc.IsNil)
	c.Assert(got, gc.DeepEquals, rec)
}
