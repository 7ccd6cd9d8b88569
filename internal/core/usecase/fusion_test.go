package usecase

import (
	"math"
	"testing"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

func TestFusionWeightsAlwaysNormalize(t *testing.T) {
	cases := []FusionWeights{
		{Vector: 5, BM25: 3, LLM: 1, Recency: 1},
		{Vector: 0.5, BM25: 0.2, LLM: 0.2, Recency: 0.1},
		{Vector: 100},
		{},
	}
	for _, w := range cases {
		f := NewScoreFusion(w)
		got := f.Weights()
		sum := got.Vector + got.BM25 + got.LLM + got.Recency
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("weights %+v normalize to %f, want 1.0", w, sum)
		}
	}
}

func TestFuseComputesWeightedSum(t *testing.T) {
	f := NewScoreFusion(FusionWeights{Vector: 1, BM25: 1, LLM: 1, Recency: 1})
	out := f.Fuse([]domain.SearchResult{
		{ChunkID: "a", VectorScore: 0.8, BM25Score: 0.4, LLMScore: 0.4, RecencyScore: 0.4},
	})
	if math.Abs(out[0].FinalScore-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %f", out[0].FinalScore)
	}
}

func TestFuseMissingChannelContributesZero(t *testing.T) {
	f := NewScoreFusion(FusionWeights{Vector: 1, BM25: 1, LLM: 1, Recency: 1})
	out := f.Fuse([]domain.SearchResult{{ChunkID: "a", VectorScore: 1.0}})
	if math.Abs(out[0].FinalScore-0.25) > 1e-9 {
		t.Fatalf("missing channels must contribute explicit zero, got %f", out[0].FinalScore)
	}
}

func TestFuseSortsDescendingStable(t *testing.T) {
	f := NewScoreFusion(FusionWeights{Vector: 1})
	out := f.Fuse([]domain.SearchResult{
		{ChunkID: "low", VectorScore: 0.2},
		{ChunkID: "tie-1", VectorScore: 0.5},
		{ChunkID: "high", VectorScore: 0.9},
		{ChunkID: "tie-2", VectorScore: 0.5},
	})
	ids := []string{out[0].ChunkID, out[1].ChunkID, out[2].ChunkID, out[3].ChunkID}
	want := []string{"high", "tie-1", "tie-2", "low"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestFuseDoesNotMutateInput(t *testing.T) {
	f := NewScoreFusion(FusionWeights{Vector: 1})
	in := []domain.SearchResult{{ChunkID: "a", VectorScore: 0.9}}
	_ = f.Fuse(in)
	if in[0].FinalScore != 0 {
		t.Fatalf("input slice must not be mutated")
	}
}
