package clause

import (
	"regexp"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// Pattern matches one clause locator kind. The table is data-driven so
// matchers can be tested and extended independently of ranking logic.
type Pattern struct {
	Type domain.ClauseType
	re   *regexp.Regexp
}

// locatorMatch is a single pattern hit inside a chunk or query.
type locatorMatch struct {
	clauseType domain.ClauseType
	number     string
	start      int
	end        int
}

// DefaultPatterns returns the ordered clause matchers. Compound forms
// (sub-section, sub-rule) come first so that their span claims the text
// before the plain section/rule matchers see it.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Type: domain.ClauseSubSection, re: regexp.MustCompile(`(?i)\bsub[\s-]?sections?\s+\(?(\d+[a-z]?)\)?`)},
		{Type: domain.ClauseSubRule, re: regexp.MustCompile(`(?i)\bsub[\s-]?rules?\s+\(?(\d+[a-z]?)\)?`)},
		{Type: domain.ClauseSection, re: regexp.MustCompile(`(?i)\bsections?\s+(\d+[a-z]{0,2}(?:\(\d+[a-z]?\))*)`)},
		{Type: domain.ClauseRule, re: regexp.MustCompile(`(?i)\brules?\s+(\d+[a-z]{0,2}(?:\(\d+[a-z]?\))*)`)},
		{Type: domain.ClauseArticle, re: regexp.MustCompile(`(?i)\barticles?\s+(\d+[a-z]{0,2})`)},
		{Type: domain.ClauseClause, re: regexp.MustCompile(`(?i)\bclauses?\s+\(?([0-9]+[a-z]?|[a-z])\)?`)},
		{Type: domain.ClauseChapter, re: regexp.MustCompile(`(?i)\bchapters?\s+([ivxlc]+|\d+)\b`)},
		{Type: domain.ClausePart, re: regexp.MustCompile(`(?i)\bparts?\s+([ivxlc]+|\d+)\b`)},
		{Type: domain.ClauseSchedule, re: regexp.MustCompile(`(?i)\bschedules?\s+([ivxlc]+|\d+)\b`)},
		{Type: domain.ClauseAmendment, re: regexp.MustCompile(`(?i)\bamendments?\s+(?:act\s+)?(\d{1,4})\b`)},
	}
}

// DefaultActContexts returns the act/framework keywords used for key
// prefixing and the context confidence bonus, in priority order.
func DefaultActContexts() []string {
	return []string{
		"rte",
		"cce",
		"nep",
		"ncte",
		"pocso",
		"samagra shiksha",
		"ssa",
		"mdm",
		"nipun",
		"education act",
	}
}

// DefaultBoilerplateTerms returns the legal boilerplate vocabulary used
// for the density component of the confidence score.
func DefaultBoilerplateTerms() []string {
	return []string{"shall", "whereas", "hereby", "therefore", "act", "rule"}
}
