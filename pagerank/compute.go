package pagerank

import (
	"github.com/citerank/citerank/bspgraph"
)

const entropyAccName = "entropy"

// makeComputeFunc returns a ComputeFunc that executes a single PageRank
// update pass using the provided dampingFactor value. Every vertex pulls
// the scores of its back-links from the previous snapshot:
//
//	score(p) = (1-d)/N + d*sinkMass/N + d * Σ score(q)/outLinks(q), q ∈ backlinks(p)
func makeComputeFunc(dampingFactor float64) bspgraph.ComputeFunc {
	return func(g *bspgraph.Graph, v *bspgraph.Vertex) error {
		var (
			superstep = g.Superstep()
			pageCount = float64(len(g.Vertices()))
			sinkMass  = g.Aggregator(sinkMassInputAccName(superstep)).Get().(float64)
		)

		// Teleportation plus the evenly spread score of the sink pages.
		newScore := (1.0-dampingFactor)/pageCount + dampingFactor*sinkMass/pageCount

		for _, src := range v.Backlinks() {
			newScore += dampingFactor * g.Value(src) / float64(src.OutLinkCount())
		}

		g.SetValue(v, newScore)
		g.Aggregator(entropyAccName).Aggregate(entropyTerm(newScore))

		// Sink pages have no out-links to follow; their score is
		// redistributed across all pages during the next pass.
		if v.IsSink() {
			g.Aggregator(sinkMassOutputAccName(superstep)).Aggregate(newScore)
		}
		return nil
	}
}

// sinkMassOutputAccName returns the name of the accumulator where the total
// score of sink pages computed during the specified superstep is written to.
func sinkMassOutputAccName(superstep int) string {
	if superstep%2 == 0 {
		return "sink_mass_0"
	}
	return "sink_mass_1"
}

// sinkMassInputAccName returns the name of the accumulator where the total
// score of sink pages for the specified superstep is read from.
func sinkMassInputAccName(superstep int) string {
	if (superstep+1)%2 == 0 {
		return "sink_mass_0"
	}
	return "sink_mass_1"
}
