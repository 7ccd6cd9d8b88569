package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// authorityTiers maps source-label substrings to authority scores, in
// priority order: the first matching tier wins.
var authorityTiers = []struct {
	marker string
	score  float64
}{
	{"act", 1.0},
	{"rule", 0.9},
	{"go", 0.8},
	{"circular", 0.7},
	{"guideline", 0.6},
}

const defaultAuthorityScore = 0.5

// AuthorityScore rates a source label by static priority: acts outrank
// rules, rules outrank government orders, and so on. Unknown labels get
// the neutral default.
func AuthorityScore(sourceLabel string) float64 {
	label := strings.ToLower(sourceLabel)
	for _, tier := range authorityTiers {
		if strings.Contains(label, tier.marker) {
			return tier.score
		}
	}
	return defaultAuthorityScore
}

var yearRe = regexp.MustCompile(`\b20\d{2}\b`)

// RecencyScore extracts 21st-century years from text and scores by the
// most recent one: one point at the current year, decaying 0.1 per year
// of age. Text without any year gets the neutral 0.5.
func RecencyScore(text string, currentYear int) float64 {
	maxYear := MaxYear(text)
	if maxYear == 0 {
		return 0.5
	}
	score := 1.0 - 0.1*float64(currentYear-maxYear)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// MaxYear returns the largest "20xx" year mentioned in text, or 0 when
// none is present.
func MaxYear(text string) int {
	maxYear := 0
	for _, m := range yearRe.FindAllString(text, -1) {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if year > maxYear {
			maxYear = year
		}
	}
	return maxYear
}
