package usecase

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SearchScope is the breadth hint the router attaches to a web search.
type SearchScope string

const (
	ScopeRecent   SearchScope = "recent"
	ScopeBroad    SearchScope = "broad"
	ScopeSpecific SearchScope = "specific"
)

// QueryMetadata carries signals extracted upstream of the router.
type QueryMetadata struct {
	DetectedYear  int
	ForceInternet bool
}

// InternetRouter decides whether vector retrieval should be supplemented
// with live web search, based on temporal and event cues in the query.
type InternetRouter struct {
	now func() time.Time

	temporalTerms    []string
	newsTerms        []string
	comparativeTerms []string
	priorityTerms    []string
	recentScopeTerms []string
	broadScopeTerms  []string
}

func NewInternetRouter(now func() time.Time) *InternetRouter {
	if now == nil {
		now = time.Now
	}
	return &InternetRouter{
		now: now,
		temporalTerms: []string{
			"latest", "recent", "current", "today", "now", "this year",
			"this month", "upcoming", "newest",
		},
		newsTerms: []string{
			"announced", "launched", "news", "update", "notification",
			"released", "press release",
		},
		comparativeTerms: []string{
			"compare", "comparison", "versus", "vs", "difference between",
		},
		priorityTerms: []string{
			"breaking", "just announced", "just released", "just launched",
		},
		recentScopeTerms: []string{
			"latest", "recent", "current", "today", "news", "update", "this year",
		},
		broadScopeTerms: []string{
			"overview", "landscape", "trends", "across states", "in general",
			"all schemes", "summary of",
		},
	}
}

// ShouldUseInternet reports whether live web search should supplement
// vector retrieval for this query.
func (r *InternetRouter) ShouldUseInternet(query string, meta QueryMetadata) bool {
	if meta.ForceInternet {
		return true
	}
	if meta.DetectedYear >= r.now().Year() {
		return true
	}

	q := strings.ToLower(query)
	if matchesAnyTerm(q, r.temporalTerms) ||
		matchesAnyTerm(q, r.newsTerms) ||
		matchesAnyTerm(q, r.comparativeTerms) {
		return true
	}
	return mentionsFutureYear(q)
}

// ShouldPrioritizeInternet reports whether web results should outrank
// vector results. The trigger set is deliberately narrower than
// inclusion: it decides precedence, not participation.
func (r *InternetRouter) ShouldPrioritizeInternet(query string) bool {
	return matchesAnyTerm(strings.ToLower(query), r.priorityTerms)
}

// SearchScope picks the breadth of the web search: recent indicators
// are checked before broad indicators; anything else is specific.
func (r *InternetRouter) SearchScope(query string) SearchScope {
	q := strings.ToLower(query)
	if matchesAnyTerm(q, r.recentScopeTerms) {
		return ScopeRecent
	}
	if matchesAnyTerm(q, r.broadScopeTerms) {
		return ScopeBroad
	}
	return ScopeSpecific
}

var futureYearRe = regexp.MustCompile(`\b20\d{2}\b`)

// mentionsFutureYear reports an explicit year mention of 2024 or later.
func mentionsFutureYear(q string) bool {
	for _, m := range futureYearRe.FindAllString(q, -1) {
		year, err := strconv.Atoi(m)
		if err == nil && year >= 2024 {
			return true
		}
	}
	return false
}

func matchesAnyTerm(q string, terms []string) bool {
	for _, term := range terms {
		if containsPhrase(q, term) {
			return true
		}
	}
	return false
}

// containsPhrase is a whole-word containment check so "vs" does not
// match inside "investments".
func containsPhrase(q, phrase string) bool {
	idx := 0
	for {
		pos := strings.Index(q[idx:], phrase)
		if pos < 0 {
			return false
		}
		pos += idx
		end := pos + len(phrase)
		leftOK := pos == 0 || !isAlnumByte(q[pos-1])
		rightOK := end >= len(q) || !isAlnumByte(q[end])
		if leftOK && rightOK {
			return true
		}
		idx = pos + 1
		if idx >= len(q) {
			return false
		}
	}
}

func isAlnumByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
