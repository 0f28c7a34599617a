// Package ranking runs a complete PageRank batch job: it loads the link
// graph, iterates until convergence, writes the output files and computes
// the top ranked pages.
package ranking

import (
	"context"
	"io/ioutil"
	"time"

	"github.com/citerank/citerank/linkgraph"
	"github.com/citerank/citerank/pagerank"
	"github.com/citerank/citerank/report"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

const defaultTopK = 100

// Config encapsulates the settings for configuring a PageRank batch run.
type Config struct {
	// The source of link records.
	Source linkgraph.Source

	// The configuration for the PageRank calculator. Progress notifications
	// are sent to Calculator.Observer in addition to the run logger.
	Calculator pagerank.Config

	// The file where the perplexity of each pass is written to.
	PerplexityPath string

	// The file where the final score of each page is written to.
	ScoresPath string

	// The number of top ranked pages to report. If not specified, a default
	// value of 100 will be used instead.
	TopK int

	// A clock instance for timing each phase of the run. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The tracer for the spans emitted by each phase of the run. If not
	// specified, the opentracing global tracer will be used instead.
	Tracer opentracing.Tracer

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Source == nil {
		err = multierror.Append(err, xerrors.Errorf("link record source has not been provided"))
	}
	if cfg.PerplexityPath == "" {
		err = multierror.Append(err, xerrors.Errorf("perplexity output path has not been specified"))
	}
	if cfg.ScoresPath == "" {
		err = multierror.Append(err, xerrors.Errorf("score output path has not been specified"))
	}
	if cfg.TopK <= 0 {
		cfg.TopK = defaultTopK
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Tracer == nil {
		cfg.Tracer = opentracing.GlobalTracer()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: ioutil.Discard})
	}
	return err
}

// Runner executes PageRank batch runs.
type Runner struct {
	cfg Config
}

// NewRunner creates a new Runner instance with the specified config.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranking: config validation failed: %w", err)
	}

	return &Runner{cfg: cfg}, nil
}

// TopK returns the number of top ranked pages reported by each run.
func (r *Runner) TopK() int { return r.cfg.TopK }

// Execute performs a single batch run. Load and calculation failures abort
// the run without producing any output. If an output file cannot be written,
// Execute returns both the in-memory results and a *report.WriteError.
func (r *Runner) Execute(ctx context.Context) (*Summary, error) {
	runID := uuid.New()
	logger := r.cfg.Logger.WithField("run_id", runID.String())
	startAt := r.cfg.Clock.Now()

	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, r.cfg.Tracer, "pagerank-run")
	span.SetTag("run_id", runID.String())
	defer span.Finish()

	calcCfg := r.cfg.Calculator
	observers := pagerank.MultiObserver{pagerank.NewLogObserver(logger)}
	if calcCfg.Observer != nil {
		observers = append(observers, calcCfg.Observer)
	}
	calcCfg.Observer = observers
	if calcCfg.Clock == nil {
		calcCfg.Clock = r.cfg.Clock
	}
	calc, err := pagerank.NewCalculator(calcCfg)
	if err != nil {
		return nil, r.fail(span, logger, err)
	}
	defer func() { _ = calc.Close() }()

	sum := &Summary{RunID: runID}

	tick := r.cfg.Clock.Now()
	if err = r.load(ctx, calc); err != nil {
		return nil, r.fail(span, logger, err)
	}
	sum.Pages = calc.PageCount()
	sum.LoadTime = r.cfg.Clock.Now().Sub(tick)

	tick = r.cfg.Clock.Now()
	res, err := r.iterate(ctx, calc)
	if err != nil {
		return nil, r.fail(span, logger, err)
	}
	sum.Result = *res
	sum.CalculationTime = r.cfg.Clock.Now().Sub(tick)

	sum.setScores(calc.Snapshot())
	sum.TopK = calc.RankedPages(r.cfg.TopK)

	tick = r.cfg.Clock.Now()
	err = r.write(ctx, calc, res)
	sum.WriteTime = r.cfg.Clock.Now().Sub(tick)
	sum.Elapsed = r.cfg.Clock.Now().Sub(startAt)

	entry := logger.WithFields(logrus.Fields{
		"pages":            sum.Pages,
		"iterations":       sum.Result.Iterations,
		"converged":        sum.Result.Converged,
		"load_time":        sum.LoadTime.String(),
		"calculation_time": sum.CalculationTime.String(),
		"write_time":       sum.WriteTime.String(),
		"total_time":       sum.Elapsed.String(),
	})
	if err != nil {
		ext.Error.Set(span, true)
		entry.WithField("err", err).Error("PageRank run completed but its results could not be written")
		return sum, err
	}
	entry.Info("completed PageRank run")
	return sum, nil
}

func (r *Runner) load(ctx context.Context, calc *pagerank.Calculator) error {
	span, _ := opentracing.StartSpanFromContextWithTracer(ctx, r.cfg.Tracer, "load-links")
	defer span.Finish()

	if err := calc.LoadSource(r.cfg.Source); err != nil {
		ext.Error.Set(span, true)
		return err
	}
	span.SetTag("pages", calc.PageCount())
	return nil
}

func (r *Runner) iterate(ctx context.Context, calc *pagerank.Calculator) (*pagerank.Result, error) {
	span, ctx := opentracing.StartSpanFromContextWithTracer(ctx, r.cfg.Tracer, "iterate")
	defer span.Finish()

	calc.Initialize()
	res, err := calc.Run(ctx)
	if err != nil {
		ext.Error.Set(span, true)
		return nil, xerrors.Errorf("calculate PageRank scores: %w", err)
	}
	span.SetTag("iterations", res.Iterations)
	span.SetTag("converged", res.Converged)
	return res, nil
}

// write produces both output files. A failure to write one file does not
// prevent the other one from being written.
func (r *Runner) write(ctx context.Context, calc *pagerank.Calculator, res *pagerank.Result) error {
	span, _ := opentracing.StartSpanFromContextWithTracer(ctx, r.cfg.Tracer, "write-results")
	defer span.Finish()

	var err error
	if wErr := report.WritePerplexities(r.cfg.PerplexityPath, res.Perplexities); wErr != nil {
		err = multierror.Append(err, wErr)
	}
	if wErr := report.WriteScores(r.cfg.ScoresPath, calc); wErr != nil {
		err = multierror.Append(err, wErr)
	}
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (r *Runner) fail(span opentracing.Span, logger *logrus.Entry, err error) error {
	ext.Error.Set(span, true)
	logger.WithField("err", err).Error("PageRank run failed")
	return err
}

// Summary holds the outcome of a batch run.
type Summary struct {
	// A unique identifier for the run.
	RunID uuid.UUID

	// The number of pages in the link graph.
	Pages int

	// The passes executed by the calculator.
	Result pagerank.Result

	// The IDs of the top ranked pages.
	TopK []int64

	// The final score of each page in registry order.
	Scores []pagerank.Score

	LoadTime        time.Duration
	CalculationTime time.Duration
	WriteTime       time.Duration
	Elapsed         time.Duration

	scoreByID map[int64]float64
}

func (s *Summary) setScores(scores []pagerank.Score) {
	s.Scores = scores
	s.scoreByID = make(map[int64]float64, len(scores))
	for _, sc := range scores {
		s.scoreByID[sc.ID] = sc.Rank
	}
}

// RankedPages returns the IDs of the k highest ranked pages.
func (s *Summary) RankedPages(k int) []int64 {
	return pagerank.TopK(s.Scores, k)
}

// Score returns the final score of the page with the specified ID.
func (s *Summary) Score(id int64) (float64, bool) {
	score, found := s.scoreByID[id]
	return score, found
}

// PerplexityTrace returns the perplexity observed after each pass.
func (s *Summary) PerplexityTrace() []float64 {
	return s.Result.Perplexities
}

// PageCount returns the number of ranked pages.
func (s *Summary) PageCount() int {
	return s.Pages
}
