package usecase

import (
	"math"
	"testing"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

func TestInternetRerankGovDomainOutranksHigherRank(t *testing.T) {
	r := NewInternetReranker(DefaultInternetBoosts(), fixedNow)
	in := []domain.WebResult{
		{Title: "blog post", URL: "https://example.com/a", Rank: 1},
		{Title: "official order", URL: "https://education.gov.in/order", Rank: 2},
	}
	out := r.Rerank(in, 5)
	// 1/2 × 1.5 = 0.75 < 1.0, so the blog still leads; but the gov
	// result must carry the boosted score.
	if out[0].URL != "https://example.com/a" {
		t.Fatalf("unexpected leader: %+v", out)
	}
	if math.Abs(out[1].FinalScore-0.75) > 1e-9 {
		t.Fatalf("expected gov boost 0.75, got %f", out[1].FinalScore)
	}
}

func TestInternetRerankAuthorityTierFirstMatchWins(t *testing.T) {
	r := NewInternetReranker(DefaultInternetBoosts(), fixedNow)
	// A url matching both gov and edu tiers takes only the gov boost.
	out := r.Rerank([]domain.WebResult{
		{Title: "circular", URL: "https://ncert.gov.in/circular", Rank: 1},
	}, 1)
	if math.Abs(out[0].FinalScore-1.5) > 1e-9 {
		t.Fatalf("expected single gov boost 1.5, got %f", out[0].FinalScore)
	}
}

func TestInternetRerankRecencyBoost(t *testing.T) {
	r := NewInternetReranker(DefaultInternetBoosts(), fixedNow)
	out := r.Rerank([]domain.WebResult{
		{Title: "notification 2025", URL: "https://example.com", Rank: 1},
		{Title: "notification 2024", URL: "https://example.org", Rank: 1},
		{Title: "notification 2010", URL: "https://example.net", Rank: 1},
	}, 3)
	if math.Abs(out[0].FinalScore-1.2) > 1e-9 {
		t.Fatalf("current-year boost expected 1.2, got %f", out[0].FinalScore)
	}
	if math.Abs(out[1].FinalScore-1.1) > 1e-9 {
		t.Fatalf("previous-year boost expected 1.1, got %f", out[1].FinalScore)
	}
	if math.Abs(out[2].FinalScore-1.0) > 1e-9 {
		t.Fatalf("old result expected no boost, got %f", out[2].FinalScore)
	}
}

func TestInternetRerankAssignsRankWhenMissing(t *testing.T) {
	r := NewInternetReranker(DefaultInternetBoosts(), fixedNow)
	out := r.Rerank([]domain.WebResult{
		{Title: "first", URL: "https://a.example"},
		{Title: "second", URL: "https://b.example"},
	}, 2)
	if out[0].Title != "first" || math.Abs(out[0].FinalScore-1.0) > 1e-9 {
		t.Fatalf("expected 1-indexed base score, got %+v", out[0])
	}
	if math.Abs(out[1].FinalScore-0.5) > 1e-9 {
		t.Fatalf("expected 1/2 for second result, got %+v", out[1])
	}
}
