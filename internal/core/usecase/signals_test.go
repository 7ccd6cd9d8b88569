package usecase

import "testing"

func TestAuthorityScoreTiers(t *testing.T) {
	cases := []struct {
		label string
		want  float64
	}{
		{"RTE Act 2009", 1.0},
		{"Service Rules", 0.9},
		{"GO Ms No 54", 0.8},
		{"Department Circular", 0.7},
		{"Implementation Guideline", 0.6},
		{"Unknown Source", 0.5},
		{"", 0.5},
	}
	for _, tc := range cases {
		if got := AuthorityScore(tc.label); got != tc.want {
			t.Fatalf("AuthorityScore(%q) = %f, want %f", tc.label, got, tc.want)
		}
	}
}

func TestAuthorityScoreFirstTierWins(t *testing.T) {
	// A label mentioning both an act and a circular takes the act tier.
	if got := AuthorityScore("circular on the education act"); got != 1.0 {
		t.Fatalf("expected act tier 1.0, got %f", got)
	}
}

func TestRecencyScoreDecaysByAge(t *testing.T) {
	if got := RecencyScore("policy notification 2025", 2025); got != 1.0 {
		t.Fatalf("current year should score 1.0, got %f", got)
	}
	if got := RecencyScore("order dated 2020", 2025); got != 0.5 {
		t.Fatalf("five-year-old text should score 0.5, got %f", got)
	}
	if got := RecencyScore("census 2001 report from 2005", 2025); got != 0 {
		t.Fatalf("very old text should floor at 0, got %f", got)
	}
}

func TestRecencyScoreUsesMaxYear(t *testing.T) {
	if got := RecencyScore("amended in 2012, revised 2024", 2025); got != 0.9 {
		t.Fatalf("expected 0.9 from max year 2024, got %f", got)
	}
}

func TestRecencyScoreNoYearIsNeutral(t *testing.T) {
	if got := RecencyScore("no dates mentioned here", 2025); got != 0.5 {
		t.Fatalf("expected neutral 0.5, got %f", got)
	}
}
