package pagerank_test

import (
	"math"

	"github.com/citerank/citerank/pagerank"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ConvergenceMonitorTestSuite))

type ConvergenceMonitorTestSuite struct {
}

func (s *ConvergenceMonitorTestSuite) TestStreakSequence(c *gc.C) {
	m := pagerank.NewConvergenceMonitor(4)

	specs := []struct {
		perplexity   float64
		expStreak    int
		expConverged bool
	}{
		// The initial reference perplexity is 0.
		{perplexity: 10.9, expStreak: 2},
		{perplexity: 3.2, expStreak: 1},
		{perplexity: 3.9, expStreak: 2},
		{perplexity: 13.1, expStreak: 3},
		{perplexity: 23.5, expStreak: 4, expConverged: true},
		// The streak restarts after convergence is reported.
		{perplexity: 23.4, expStreak: 2},
		{perplexity: 24.0, expStreak: 1},
	}

	for i, spec := range specs {
		c.Logf("observation %d: %f", i, spec.perplexity)
		streak, converged := m.Observe(spec.perplexity)
		c.Assert(streak, gc.Equals, spec.expStreak)
		c.Assert(converged, gc.Equals, spec.expConverged)
		c.Assert(m.LastPerplexity(), gc.Equals, spec.perplexity)
	}
}

func (s *ConvergenceMonitorTestSuite) TestSinglePassStreak(c *gc.C) {
	m := pagerank.NewConvergenceMonitor(1)

	// Both agreeing and changing digits satisfy a streak of one pass.
	for _, perplexity := range []float64{10.5, 10.5, 10.5, 3.2, 10.5} {
		streak, converged := m.Observe(perplexity)
		c.Assert(streak, gc.Equals, 1)
		c.Assert(converged, gc.Equals, true, gc.Commentf("perplexity %f", perplexity))
	}
}

func (s *ConvergenceMonitorTestSuite) TestReset(c *gc.C) {
	m := pagerank.NewConvergenceMonitor(3)
	m.Observe(5.5)
	m.Observe(5.1)

	m.Reset()
	c.Assert(m.LastPerplexity(), gc.Equals, 0.0)

	streak, converged := m.Observe(5.0)
	c.Assert(streak, gc.Equals, 1)
	c.Assert(converged, gc.Equals, false)
}

func (s *ConvergenceMonitorTestSuite) TestPerplexity(c *gc.C) {
	for _, n := range []int{1, 2, 7, 1000} {
		scores := make([]float64, n)
		for i := range scores {
			scores[i] = 1.0 / float64(n)
		}
		got := pagerank.Perplexity(scores)
		c.Assert(math.Abs(got-float64(n)) < 1e-9, gc.Equals, true, gc.Commentf("expected perplexity %d; got %f", n, got))
	}

	// Zero scores do not contribute to the entropy.
	c.Assert(pagerank.Perplexity([]float64{0, 0.5, 0, 0.5}), gc.Equals, 2.0)
	c.Assert(pagerank.Perplexity(nil), gc.Equals, 1.0)
}
