package pagerank

import "sort"

// Score associates a page ID with its PageRank score.
type Score struct {
	ID   int64
	Rank float64
}

// TopK returns the IDs of the k highest ranked pages. Pages are ordered by
// descending rank; ties are broken by ascending ID. TopK does not modify the
// provided slice.
func TopK(scores []Score, k int) []int64 {
	if k <= 0 {
		return []int64{}
	}

	sorted := make([]Score, len(scores))
	copy(sorted, scores)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank > sorted[j].Rank
		}
		return sorted[i].ID < sorted[j].ID
	})

	if k > len(sorted) {
		k = len(sorted)
	}
	ids := make([]int64, k)
	for i := 0; i < k; i++ {
		ids[i] = sorted[i].ID
	}
	return ids
}
