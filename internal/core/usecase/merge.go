package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// govDomainBoost is applied on top of the source weighting when a web
// result comes from an Indian government domain.
const govDomainBoost = 1.5

var govDomainMarkers = []string{"gov.in", "nic.in"}

// MergeWeights balances vector-store results against web results. Any
// magnitudes are accepted; construction renormalizes them to sum to 1.
type MergeWeights struct {
	VectorDB float64
	Internet float64
}

func DefaultMergeWeights() MergeWeights {
	return MergeWeights{VectorDB: 0.7, Internet: 0.3}
}

// InternetMerger combines vector-store and web candidates into one
// ranked list with source-type weighting.
type InternetMerger struct {
	weights MergeWeights
}

func NewInternetMerger(weights MergeWeights) *InternetMerger {
	total := weights.VectorDB + weights.Internet
	if total <= 0 {
		weights = DefaultMergeWeights()
		total = weights.VectorDB + weights.Internet
	}
	weights.VectorDB /= total
	weights.Internet /= total
	return &InternetMerger{weights: weights}
}

func (m *InternetMerger) Weights() MergeWeights {
	return m.weights
}

// Merge scores vector results at score×vector_weight and web results at
// (1/rank)×internet_weight with a government-domain boost, then sorts
// the combined list descending and truncates to topK.
func (m *InternetMerger) Merge(vectorResults []domain.SearchResult, internetResults []domain.SearchResult, topK int) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(vectorResults)+len(internetResults))

	for _, r := range vectorResults {
		r.FinalScore = r.VectorScore * m.weights.VectorDB
		out = append(out, r)
	}
	for i, r := range internetResults {
		rank := r.Rank
		if rank <= 0 {
			rank = i + 1
		}
		score := (1.0 / float64(rank)) * m.weights.Internet
		if isGovDomain(r.URL) {
			score *= govDomainBoost
		}
		r.FinalScore = score
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// Interleave alternates N vector results then M internet results until
// both lists are exhausted, preserving each list's internal order. No
// re-scoring happens; use it when explicit source balance is required.
func (m *InternetMerger) Interleave(vectorResults []domain.SearchResult, internetResults []domain.SearchResult, ratio string) []domain.SearchResult {
	n, mm := parseRatio(ratio)
	out := make([]domain.SearchResult, 0, len(vectorResults)+len(internetResults))

	vi, ii := 0, 0
	for vi < len(vectorResults) || ii < len(internetResults) {
		for k := 0; k < n && vi < len(vectorResults); k++ {
			out = append(out, vectorResults[vi])
			vi++
		}
		for k := 0; k < mm && ii < len(internetResults); k++ {
			out = append(out, internetResults[ii])
			ii++
		}
	}
	return out
}

// parseRatio reads "N:M", defaulting to 2:1 on malformed input.
func parseRatio(ratio string) (int, int) {
	parts := strings.SplitN(ratio, ":", 2)
	if len(parts) != 2 {
		return 2, 1
	}
	n, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || n <= 0 || m <= 0 {
		return 2, 1
	}
	return n, m
}

func isGovDomain(url string) bool {
	u := strings.ToLower(url)
	for _, marker := range govDomainMarkers {
		if strings.Contains(u, marker) {
			return true
		}
	}
	return false
}
