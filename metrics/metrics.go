// Package metrics exports the progress of PageRank runs as prometheus
// metrics.
package metrics

import (
	"github.com/citerank/citerank/pagerank"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "citerank"

// Compile-time check for ensuring Observer implements pagerank.Observer.
var _ pagerank.Observer = (*Observer)(nil)

// Observer is a pagerank.Observer that records calculation progress into a
// set of prometheus metrics.
type Observer struct {
	pages         prometheus.Gauge
	sinkMass      prometheus.Gauge
	iterations    prometheus.Counter
	perplexity    prometheus.Gauge
	streak        prometheus.Gauge
	iterationTime prometheus.Histogram
	runs          *prometheus.CounterVec
}

// NewObserver creates the PageRank metrics and registers them with reg.
func NewObserver(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)
	return &Observer{
		pages: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pages",
			Help:      "The number of pages in the loaded link graph",
		}),
		sinkMass: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sink_mass",
			Help:      "The total score of sink pages redistributed by the latest pass",
		}),
		iterations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "The total number of executed PageRank passes",
		}),
		perplexity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "perplexity",
			Help:      "The perplexity of the score distribution after the latest pass",
		}),
		streak: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "convergence_streak",
			Help:      "The convergence streak reached after the latest pass",
		}),
		iterationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iteration_duration_seconds",
			Help:      "The time it took to execute a PageRank pass",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "The total number of completed PageRank runs",
		}, []string{"converged"}),
	}
}

// Initialized implements pagerank.Observer.
func (o *Observer) Initialized(pageCount int, sinkMass float64) {
	o.pages.Set(float64(pageCount))
	o.sinkMass.Set(sinkMass)
	o.streak.Set(0)
}

// IterationCompleted implements pagerank.Observer.
func (o *Observer) IterationCompleted(stats pagerank.IterationStats) {
	o.iterations.Inc()
	o.perplexity.Set(stats.Perplexity)
	o.streak.Set(float64(stats.Streak))
	o.sinkMass.Set(stats.SinkMass)
	o.iterationTime.Observe(stats.Duration.Seconds())
}

// RunCompleted implements pagerank.Observer.
func (o *Observer) RunCompleted(res pagerank.Result) {
	converged := "false"
	if res.Converged {
		converged = "true"
	}
	o.runs.WithLabelValues(converged).Inc()
}
