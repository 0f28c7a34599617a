package pagerank

import "math"

// ConvergenceMonitor decides when a PageRank run has settled by tracking the
// units digit of the perplexity observed after each pass. It is a stability
// heuristic rather than a numerical tolerance test: the run is considered
// converged once the digit stays unchanged for a streak of passes.
type ConvergenceMonitor struct {
	limit          int
	streak         int
	lastPerplexity float64
}

// NewConvergenceMonitor returns a monitor that reports convergence once the
// streak counter reaches limit.
func NewConvergenceMonitor(limit int) *ConvergenceMonitor {
	m := &ConvergenceMonitor{limit: limit}
	m.Reset()
	return m
}

// Reset clears the tracked perplexity and streak counter.
func (m *ConvergenceMonitor) Reset() {
	m.streak = 1
	m.lastPerplexity = 0
}

// Observe records the perplexity of the latest pass. It returns the streak
// reached by this observation and whether the run has converged. The streak
// counter restarts once convergence is reported.
func (m *ConvergenceMonitor) Observe(perplexity float64) (int, bool) {
	if unitsDigit(perplexity) == unitsDigit(m.lastPerplexity) {
		m.streak++
	} else {
		m.streak = 1
	}
	m.lastPerplexity = perplexity

	if m.streak >= m.limit {
		m.streak = 1
		return m.limit, true
	}
	return m.streak, false
}

// LastPerplexity returns the most recently observed perplexity.
func (m *ConvergenceMonitor) LastPerplexity() float64 { return m.lastPerplexity }

func unitsDigit(v float64) float64 {
	return math.Mod(math.Floor(v), 10)
}

// Perplexity returns 2 raised to the base-2 entropy of the provided score
// distribution.
func Perplexity(scores []float64) float64 {
	var entropy float64
	for _, p := range scores {
		entropy += entropyTerm(p)
	}
	return perplexityFromEntropy(entropy)
}

// entropyTerm returns p*log2(p), with 0*log2(0) defined as 0.
func entropyTerm(p float64) float64 {
	if p <= 0 {
		return 0
	}
	return p * math.Log2(p)
}

// perplexityFromEntropy converts the accumulated Σ p*log2(p) into a perplexity.
func perplexityFromEntropy(entropy float64) float64 {
	return math.Pow(2, -entropy)
}
