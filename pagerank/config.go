package pagerank

import (
	multierror "github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"golang.org/x/xerrors"
)

// Config encapsulates the required parameters for creating a new PageRank
// calculator instance.
type Config struct {
	// DampingFactor is the probability that a random surfer will click on
	// one of the outgoing links on the page they are currently visiting
	// instead of visiting (teleporting to) a random page in the graph.
	//
	// If not specified, a default value of 0.85 will be used instead.
	DampingFactor float64

	// ConvergenceStreak is the number of consecutive passes whose
	// perplexity must agree in its units digit before the calculation is
	// considered converged. The streak counter starts at 1, so the default
	// value of 4 requires three agreeing comparisons in a row.
	ConvergenceStreak int

	// MaxIterations caps the number of passes executed by Run. A zero
	// value means that Run keeps iterating until convergence.
	MaxIterations int

	// The number of workers to spin up for computing PageRank scores. If
	// not specified, a default value of 1 will be used instead.
	ComputeWorkers int

	// Observer receives progress notifications. If not specified, progress
	// is not reported.
	Observer Observer

	// A clock instance for timing each pass. If not specified, the default
	// wall-clock will be used instead.
	Clock clock.Clock
}

// validate checks whether the PageRank calculator configuration is valid and
// sets the default values where required.
func (c *Config) validate() error {
	var err error
	if c.DampingFactor < 0 || c.DampingFactor > 1.0 {
		err = multierror.Append(err, xerrors.New("DampingFactor must be in the range (0, 1]"))
	} else if c.DampingFactor == 0 {
		c.DampingFactor = 0.85
	}

	if c.ConvergenceStreak < 0 {
		err = multierror.Append(err, xerrors.New("ConvergenceStreak must be a positive number"))
	} else if c.ConvergenceStreak == 0 {
		c.ConvergenceStreak = 4
	}

	if c.MaxIterations < 0 {
		err = multierror.Append(err, xerrors.New("MaxIterations must not be negative"))
	}

	if c.ComputeWorkers <= 0 {
		c.ComputeWorkers = 1
	}
	if c.Observer == nil {
		c.Observer = nopObserver{}
	}
	if c.Clock == nil {
		c.Clock = clock.WallClock
	}

	return err
}
