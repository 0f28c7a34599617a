package pagerank

import (
	"context"
	"time"

	"github.com/citerank/citerank/bspgraph"
	"github.com/citerank/citerank/bspgraph/aggregator"
	"github.com/citerank/citerank/linkgraph"
	"golang.org/x/xerrors"
)

// ErrNotInitialized is returned by Run and Step if Initialize has not been
// invoked since the link graph was last loaded.
var ErrNotInitialized = xerrors.New("PageRank scores have not been initialized")

// Result summarizes the passes executed by a call to Run or Step.
type Result struct {
	// The number of executed passes.
	Iterations int

	// The perplexity after each pass, in execution order.
	Perplexities []float64

	// Converged is false if the run was stopped by the iteration cap
	// before the convergence monitor reported convergence.
	Converged bool
}

// Calculator executes the iterative version of the PageRank algorithm
// on a graph until the convergence monitor reports a stable perplexity.
//
// Calculator instances are not safe for concurrent use.
type Calculator struct {
	g   *bspgraph.Graph
	cfg Config

	monitor     *ConvergenceMonitor
	initialized bool
}

// NewCalculator returns a new Calculator instance using the provided config
// options.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank calculator config validation failed: %w", err)
	}

	g, err := bspgraph.NewGraph(bspgraph.GraphConfig{
		ComputeWorkers: cfg.ComputeWorkers,
		ComputeFn:      makeComputeFunc(cfg.DampingFactor),
	})
	if err != nil {
		return nil, err
	}

	return &Calculator{
		cfg:     cfg,
		g:       g,
		monitor: NewConvergenceMonitor(cfg.ConvergenceStreak),
	}, nil
}

// Close releases any resources allocated by this PageRank calculator instance.
func (c *Calculator) Close() error {
	return c.g.Close()
}

// Graph returns the underlying bspgraph.Graph instance.
func (c *Calculator) Graph() *bspgraph.Graph {
	return c.g
}

// PageCount returns the number of known pages.
func (c *Calculator) PageCount() int {
	return len(c.g.Vertices())
}

// AddRecord registers the pages referenced by rec and replaces the back-link
// set of its target page.
func (c *Calculator) AddRecord(rec *linkgraph.Record) error {
	c.initialized = false
	c.g.AddVertex(rec.Target)
	return c.g.SetBacklinks(rec.Target, rec.Sources)
}

// Load adds every record produced by it to the link graph and closes the
// iterator. If any error occurs, the link graph is reset so that no partially
// loaded state can be used.
func (c *Calculator) Load(it linkgraph.RecordIterator) error {
	err := c.load(it)
	if cErr := it.Close(); err == nil {
		err = cErr
	}

	if err != nil {
		c.resetGraph()
		return xerrors.Errorf("load link records: %w", err)
	}
	return nil
}

// LoadSource loads all link records provided by src.
func (c *Calculator) LoadSource(src linkgraph.Source) error {
	it, err := src.Records()
	if err != nil {
		c.resetGraph()
		return xerrors.Errorf("load link records: %w", err)
	}
	return c.Load(it)
}

func (c *Calculator) load(it linkgraph.RecordIterator) error {
	for it.Next() {
		if err := c.AddRecord(it.Record()); err != nil {
			return err
		}
	}
	return it.Error()
}

func (c *Calculator) resetGraph() {
	_ = c.g.Reset()
	c.initialized = false
}

// Initialize assigns a score of 1/N to each one of the N known pages and
// resets the convergence tracking state. It must be invoked after the link
// graph has been loaded and before calling Run or Step.
func (c *Calculator) Initialize() {
	c.registerAggregators()

	vertices := c.g.Vertices()
	if len(vertices) != 0 {
		c.g.SetAllValues(1.0 / float64(len(vertices)))
	}

	var sinkMass float64
	for _, v := range vertices {
		if v.IsSink() {
			sinkMass += c.g.Value(v)
		}
	}
	c.g.Aggregator(sinkMassInputAccName(c.g.Superstep())).Set(sinkMass)

	c.monitor.Reset()
	c.initialized = true
	c.cfg.Observer.Initialized(len(vertices), sinkMass)
}

// Run executes PageRank passes until the convergence monitor reports a
// stable perplexity, the configured iteration cap is reached or ctx expires.
func (c *Calculator) Run(ctx context.Context) (*Result, error) {
	return c.run(ctx, -1)
}

// Step executes a single PageRank pass.
func (c *Calculator) Step(ctx context.Context) (*Result, error) {
	return c.run(ctx, 1)
}

func (c *Calculator) run(ctx context.Context, maxSteps int) (*Result, error) {
	if !c.initialized {
		return nil, ErrNotInitialized
	}

	res := new(Result)
	ex := bspgraph.NewExecutor(c.g, c.executorCallbacks(res))

	var err error
	if maxSteps < 0 {
		err = ex.RunToCompletion(ctx)
	} else {
		err = ex.RunSteps(ctx, maxSteps)
	}
	if err != nil {
		return nil, err
	}

	c.cfg.Observer.RunCompleted(*res)
	return res, nil
}

// executorCallbacks returns the callbacks for running PageRank passes whose
// outcome is recorded into res.
func (c *Calculator) executorCallbacks(res *Result) bspgraph.ExecutorCallbacks {
	var (
		stats     IterationStats
		startedAt time.Time
	)
	return bspgraph.ExecutorCallbacks{
		PreStep: func(_ context.Context, g *bspgraph.Graph) error {
			// Reset the accumulators that will be populated by the
			// next pass.
			g.Aggregator(entropyAccName).Set(0.0)
			g.Aggregator(sinkMassOutputAccName(g.Superstep())).Set(0.0)

			stats = IterationStats{
				SinkMass: g.Aggregator(sinkMassInputAccName(g.Superstep())).Get().(float64),
			}
			startedAt = c.cfg.Clock.Now()
			return nil
		},
		PostStepKeepRunning: func(_ context.Context, g *bspgraph.Graph, _ int) (bool, error) {
			perplexity := perplexityFromEntropy(g.Aggregator(entropyAccName).Get().(float64))
			streak, converged := c.monitor.Observe(perplexity)

			res.Iterations++
			res.Perplexities = append(res.Perplexities, perplexity)
			res.Converged = converged

			stats.Iteration = res.Iterations
			stats.Perplexity = perplexity
			stats.Streak = streak
			stats.Duration = c.cfg.Clock.Now().Sub(startedAt)
			c.cfg.Observer.IterationCompleted(stats)

			if converged {
				return false, nil
			}
			return c.cfg.MaxIterations == 0 || res.Iterations < c.cfg.MaxIterations, nil
		},
	}
}

// registerAggregators creates and registers the aggregator instances that we
// need to run the PageRank calculation algorithm.
func (c *Calculator) registerAggregators() {
	c.g.RegisterAggregator(entropyAccName, new(aggregator.Float64Accumulator))
	c.g.RegisterAggregator("sink_mass_0", new(aggregator.Float64Accumulator))
	c.g.RegisterAggregator("sink_mass_1", new(aggregator.Float64Accumulator))
}

// Perplexity returns the perplexity of the current score distribution.
func (c *Calculator) Perplexity() float64 {
	var entropy float64
	for _, v := range c.g.Vertices() {
		entropy += entropyTerm(c.g.Value(v))
	}
	return perplexityFromEntropy(entropy)
}

// Scores invokes the provided visitor function for each page in the order
// the pages were first encountered while loading the link graph.
func (c *Calculator) Scores(visitFn func(id int64, score float64) error) error {
	for _, v := range c.g.Vertices() {
		if err := visitFn(v.ID(), c.g.Value(v)); err != nil {
			return err
		}
	}

	return nil
}

// Snapshot returns the current score of every page in registry order.
func (c *Calculator) Snapshot() []Score {
	vertices := c.g.Vertices()
	scores := make([]Score, len(vertices))
	for i, v := range vertices {
		scores[i] = Score{ID: v.ID(), Rank: c.g.Value(v)}
	}
	return scores
}

// RankedPages returns the IDs of the k highest ranked pages ordered by
// descending score; ties are broken by ascending page ID.
func (c *Calculator) RankedPages(k int) []int64 {
	return TopK(c.Snapshot(), k)
}
