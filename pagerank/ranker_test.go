package pagerank_test

import (
	"github.com/citerank/citerank/pagerank"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(RankerTestSuite))

type RankerTestSuite struct {
}

func (s *RankerTestSuite) TestTopK(c *gc.C) {
	scores := []pagerank.Score{
		{ID: 10, Rank: 0.1},
		{ID: 7, Rank: 0.4},
		{ID: 3, Rank: 0.2},
		{ID: 9, Rank: 0.2},
		{ID: 1, Rank: 0.1},
	}

	c.Assert(pagerank.TopK(scores, 3), gc.DeepEquals, []int64{7, 3, 9})
	c.Assert(pagerank.TopK(scores, 5), gc.DeepEquals, []int64{7, 3, 9, 1, 10})
	c.Assert(pagerank.TopK(scores, 100), gc.HasLen, 5)
	c.Assert(pagerank.TopK(scores, 0), gc.DeepEquals, []int64{})
	c.Assert(pagerank.TopK(nil, 10), gc.DeepEquals, []int64{})

	// The input must not be reordered.
	c.Assert(scores[0].ID, gc.Equals, int64(10))
}
