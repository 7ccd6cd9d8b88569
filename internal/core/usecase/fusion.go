package usecase

import (
	"sort"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// FusionWeights holds the per-channel weights for score fusion. Any
// magnitudes are accepted; construction renormalizes them to sum to 1.
type FusionWeights struct {
	Vector  float64
	BM25    float64
	LLM     float64
	Recency float64
}

func DefaultFusionWeights() FusionWeights {
	return FusionWeights{Vector: 0.5, BM25: 0.2, LLM: 0.2, Recency: 0.1}
}

// ScoreFusion combines the heterogeneous score channels of each result
// into one ranking key by weighted linear combination. A channel missing
// on a result contributes an explicit zero, it is never skipped.
type ScoreFusion struct {
	weights FusionWeights
}

func NewScoreFusion(weights FusionWeights) *ScoreFusion {
	total := weights.Vector + weights.BM25 + weights.LLM + weights.Recency
	if total <= 0 {
		weights = DefaultFusionWeights()
		total = weights.Vector + weights.BM25 + weights.LLM + weights.Recency
	}
	weights.Vector /= total
	weights.BM25 /= total
	weights.LLM /= total
	weights.Recency /= total
	return &ScoreFusion{weights: weights}
}

// Weights exposes the normalized channel weights.
func (f *ScoreFusion) Weights() FusionWeights {
	return f.weights
}

// Fuse writes final_score on every result and sorts descending by it.
// The sort is stable: equal scores preserve input order.
func (f *ScoreFusion) Fuse(results []domain.SearchResult) []domain.SearchResult {
	out := make([]domain.SearchResult, len(results))
	copy(out, results)

	for i := range out {
		out[i].FinalScore = f.weights.Vector*out[i].VectorScore +
			f.weights.BM25*out[i].BM25Score +
			f.weights.LLM*out[i].LLMScore +
			f.weights.Recency*out[i].RecencyScore
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	return out
}
