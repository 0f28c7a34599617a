package pagerank

import (
	"time"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/citerank/citerank/pagerank Observer

// IterationStats describes a completed PageRank pass.
type IterationStats struct {
	// The 1-based number of the pass.
	Iteration int

	// The perplexity of the score distribution produced by the pass.
	Perplexity float64

	// The convergence streak reached after the pass.
	Streak int

	// The total score of sink pages that was redistributed by the pass.
	SinkMass float64

	// The time it took to execute the pass.
	Duration time.Duration
}

// Observer is implemented by types that want to be notified about the
// progress of a PageRank calculation.
type Observer interface {
	// Initialized is invoked after the scores have been reset to their
	// initial uniform value.
	Initialized(pageCount int, sinkMass float64)

	// IterationCompleted is invoked after each pass.
	IterationCompleted(stats IterationStats)

	// RunCompleted is invoked when a call to Run or Step returns without
	// an error.
	RunCompleted(res Result)
}

type nopObserver struct{}

func (nopObserver) Initialized(int, float64) {}
func (nopObserver) IterationCompleted(IterationStats) {}
func (nopObserver) RunCompleted(Result) {}

// MultiObserver fans out notifications to a list of observers.
type MultiObserver []Observer

// Initialized implements Observer.
func (m MultiObserver) Initialized(pageCount int, sinkMass float64) {
	for _, o := range m {
		o.Initialized(pageCount, sinkMass)
	}
}

// IterationCompleted implements Observer.
func (m MultiObserver) IterationCompleted(stats IterationStats) {
	for _, o := range m {
		o.IterationCompleted(stats)
	}
}

// RunCompleted implements Observer.
func (m MultiObserver) RunCompleted(res Result) {
	for _, o := range m {
		o.RunCompleted(res)
	}
}

// LogObserver reports calculation progress to a logrus logger.
type LogObserver struct {
	logger *logrus.Entry
}

// NewLogObserver returns an Observer that logs each pass at debug level and
// the run summary at info level.
func NewLogObserver(logger *logrus.Entry) *LogObserver {
	return &LogObserver{logger: logger}
}

// Initialized implements Observer.
func (o *LogObserver) Initialized(pageCount int, sinkMass float64) {
	o.logger.WithFields(logrus.Fields{
		"page_count": pageCount,
		"sink_mass":  sinkMass,
	}).Info("initialized PageRank scores")
}

// IterationCompleted implements Observer.
func (o *LogObserver) IterationCompleted(stats IterationStats) {
	o.logger.WithFields(logrus.Fields{
		"iteration":  stats.Iteration,
		"perplexity": stats.Perplexity,
		"streak":     stats.Streak,
		"sink_mass":  stats.SinkMass,
		"duration":   stats.Duration.String(),
	}).Debug("completed PageRank pass")
}

// RunCompleted implements Observer.
func (o *LogObserver) RunCompleted(res Result) {
	entry := o.logger.WithFields(logrus.Fields{
		"iterations": res.Iterations,
		"converged":  res.Converged,
	})
	if n := len(res.Perplexities); n != 0 {
		entry = entry.WithField("perplexity", res.Perplexities[n-1])
	}

	if !res.Converged && res.Iterations != 0 {
		entry.Warn("PageRank run stopped before convergence")
		return
	}
	entry.Info("PageRank run completed")
}
