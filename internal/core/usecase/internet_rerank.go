package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// InternetBoosts configures the multiplicative authority tiers for web
// results. Tiers are first-match-wins, never cumulative.
type InternetBoosts struct {
	Gov  float64
	Edu  float64
	Intl float64
}

func DefaultInternetBoosts() InternetBoosts {
	return InternetBoosts{Gov: 1.5, Edu: 1.3, Intl: 1.2}
}

// InternetReranker scores web results by reciprocal rank with authority
// and recency boosts.
type InternetReranker struct {
	boosts InternetBoosts
	now    func() time.Time

	govDomains  []string
	eduDomains  []string
	intlDomains []string
}

func NewInternetReranker(boosts InternetBoosts, now func() time.Time) *InternetReranker {
	if boosts.Gov <= 0 {
		boosts.Gov = DefaultInternetBoosts().Gov
	}
	if boosts.Edu <= 0 {
		boosts.Edu = DefaultInternetBoosts().Edu
	}
	if boosts.Intl <= 0 {
		boosts.Intl = DefaultInternetBoosts().Intl
	}
	if now == nil {
		now = time.Now
	}
	return &InternetReranker{
		boosts:      boosts,
		now:         now,
		govDomains:  []string{"gov.in", "nic.in", ".gov"},
		eduDomains:  []string{"ac.in", ".edu", "ncert", "cbse", "ugc"},
		intlDomains: []string{"unesco", "unicef", "worldbank", "oecd", "un.org"},
	}
}

// Rerank scores each web result as 1/rank multiplied by its authority
// tier and recency boost, then sorts descending and truncates to topK.
func (r *InternetReranker) Rerank(webResults []domain.WebResult, topK int) []domain.SearchResult {
	if len(webResults) == 0 {
		return nil
	}

	currentYear := r.now().Year()
	out := make([]domain.SearchResult, 0, len(webResults))
	for i, wr := range webResults {
		rank := wr.Rank
		if rank <= 0 {
			rank = i + 1
		}
		score := 1.0 / float64(rank)
		score *= r.authorityBoost(wr.URL)
		score *= recencyBoost(wr.Title+" "+wr.Snippet, currentYear)

		out = append(out, domain.SearchResult{
			Title:      wr.Title,
			URL:        wr.URL,
			Snippet:    wr.Snippet,
			Text:       wr.Snippet,
			Source:     domain.SourceInternet,
			Rank:       rank,
			FinalScore: score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// authorityBoost picks the first matching domain tier.
func (r *InternetReranker) authorityBoost(url string) float64 {
	u := strings.ToLower(url)
	for _, d := range r.govDomains {
		if strings.Contains(u, d) {
			return r.boosts.Gov
		}
	}
	for _, d := range r.eduDomains {
		if strings.Contains(u, d) {
			return r.boosts.Edu
		}
	}
	for _, d := range r.intlDomains {
		if strings.Contains(u, d) {
			return r.boosts.Intl
		}
	}
	return 1.0
}

func recencyBoost(text string, currentYear int) float64 {
	switch MaxYear(text) {
	case currentYear:
		return 1.2
	case currentYear - 1:
		return 1.1
	default:
		return 1.0
	}
}
