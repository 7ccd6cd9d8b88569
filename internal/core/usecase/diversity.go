package usecase

import (
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// DiversityReranker applies greedy MMR-style selection: each pick's
// relevance is discounted by how many results of its primary category
// were already selected. A zero weight degenerates to pure relevance
// ranking; a positive weight keeps any single category from
// monopolizing the result set.
type DiversityReranker struct{}

func NewDiversityReranker() *DiversityReranker {
	return &DiversityReranker{}
}

// Rerank selects up to topK results. At each step the candidate with
// the highest combined score wins, where
//
//	combined = relevance − diversityWeight × count[primary category]
//
// and every category tag of the pick increments its running count. Ties
// on combined score keep first-seen order.
func (d *DiversityReranker) Rerank(results []domain.SearchResult, diversityWeight float64, topK int) []domain.SearchResult {
	if len(results) == 0 {
		return results
	}
	if topK <= 0 || topK > len(results) {
		topK = len(results)
	}

	remaining := make([]domain.SearchResult, len(results))
	copy(remaining, results)

	counts := make(map[string]int)
	selected := make([]domain.SearchResult, 0, topK)

	for len(selected) < topK && len(remaining) > 0 {
		bestIdx := 0
		bestCombined := combinedScore(remaining[0], diversityWeight, counts)
		for i := 1; i < len(remaining); i++ {
			combined := combinedScore(remaining[i], diversityWeight, counts)
			if combined > bestCombined {
				bestIdx = i
				bestCombined = combined
			}
		}

		pick := remaining[bestIdx]
		selected = append(selected, pick)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		if len(pick.Categories) == 0 {
			counts[pick.PrimaryCategory()]++
			continue
		}
		for _, cat := range pick.Categories {
			counts[cat]++
		}
	}
	return selected
}

func combinedScore(r domain.SearchResult, weight float64, counts map[string]int) float64 {
	return r.FinalScore - weight*float64(counts[r.PrimaryCategory()])
}
