package pagerank_test

import (
	"time"

	"github.com/citerank/citerank/pagerank"
	"github.com/citerank/citerank/pagerank/mocks"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ObserverTestSuite))

type ObserverTestSuite struct {
}

func (s *ObserverTestSuite) TestMultiObserver(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	stats := pagerank.IterationStats{Iteration: 1, Perplexity: 2.5}
	res := pagerank.Result{Iterations: 1}

	obs := make(pagerank.MultiObserver, 2)
	for i := range obs {
		m := mocks.NewMockObserver(ctrl)
		m.EXPECT().Initialized(3, 0.25)
		m.EXPECT().IterationCompleted(stats)
		m.EXPECT().RunCompleted(res)
		obs[i] = m
	}

	obs.Initialized(3, 0.25)
	obs.IterationCompleted(stats)
	obs.RunCompleted(res)
}

func (s *ObserverTestSuite) TestLogObserver(c *gc.C) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	obs := pagerank.NewLogObserver(logrus.NewEntry(logger))

	obs.Initialized(10, 0.3)
	obs.IterationCompleted(pagerank.IterationStats{
		Iteration:  1,
		Perplexity: 8.5,
		Streak:     1,
		Duration:   time.Second,
	})
	obs.RunCompleted(pagerank.Result{
		Iterations:   1,
		Perplexities: []float64{8.5},
		Converged:    true,
	})

	entries := hook.AllEntries()
	c.Assert(entries, gc.HasLen, 3)
	c.Assert(entries[0].Data["page_count"], gc.Equals, 10)
	c.Assert(entries[1].Level, gc.Equals, logrus.DebugLevel)
	c.Assert(entries[1].Data["iteration"], gc.Equals, 1)
	c.Assert(entries[2].Level, gc.Equals, logrus.InfoLevel)
	c.Assert(entries[2].Data["perplexity"], gc.Equals, 8.5)

	hook.Reset()
	obs.RunCompleted(pagerank.Result{Iterations: 5, Perplexities: []float64{1, 2, 3, 4, 5}})
	c.Assert(hook.LastEntry().Level, gc.Equals, logrus.WarnLevel)
	c.Assert(hook.LastEntry().Message, gc.Equals, "PageRank run stopped before convergence")
}
