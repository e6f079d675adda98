// Package ranker scores candidate documents against a query by cosine
// similarity over sparse TF-IDF vectors and orders the results.
package ranker

import (
	"math"
	"sort"
)

// ScoredDoc pairs a document id with its similarity score.
type ScoredDoc struct {
	DocID string
	Score float64
}

// CosineSimilarity computes the normalised dot product of two sparse
// vectors. Vectors sharing no terms short-circuit to 0. Norms run over all
// entries of each vector, not just the shared terms. For non-negative
// inputs the result lies in [0,1].
func CosineSimilarity(a, b map[string]float64) float64 {
	// Iterate the smaller map when collecting shared terms.
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	var dot float64
	shared := false
	for term, weight := range small {
		if other, ok := large[term]; ok {
			dot += weight * other
			shared = true
		}
	}
	if !shared {
		return 0
	}
	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (normA * normB)
}

func norm(vec map[string]float64) float64 {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Rank sorts candidates by descending score and truncates to limit. The
// sort is stable so equal scores keep candidate order. Entries with a zero
// or negative score are assumed to be filtered out by the caller.
func Rank(candidates []ScoredDoc, limit int) []ScoredDoc {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
