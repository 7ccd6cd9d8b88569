package usecase

import (
	"regexp"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// modePriority is the deterministic tie-break order when two modes tie
// on trigger count: qa > policy > deepthink > brainstorm > compliance.
var modePriority = []domain.QueryMode{
	domain.ModeQA,
	domain.ModePolicy,
	domain.ModeDeepThink,
	domain.ModeBrainstorm,
	domain.ModeCompliance,
}

type modeTriggers struct {
	mode     domain.QueryMode
	patterns []*regexp.Regexp
}

// QueryClassifier maps a raw query to a retrieval mode by counting
// distinct trigger-pattern matches per mode.
type QueryClassifier struct {
	triggers []modeTriggers
}

func NewQueryClassifier() *QueryClassifier {
	return &QueryClassifier{
		triggers: []modeTriggers{
			{
				mode: domain.ModeQA,
				patterns: compileAll(
					`(?i)\bwhat\s+(is|are|was|were)\b`,
					`(?i)\bdefine\b`,
					`(?i)\bmeaning\s+of\b`,
					`(?i)\bwho\s+(is|are|can)\b`,
					`(?i)\bwhen\s+(is|was|does|did)\b`,
					`(?i)\bhow\s+many\b`,
				),
			},
			{
				mode: domain.ModeDeepThink,
				patterns: compileAll(
					`(?i)\bcomprehensive\s+analysis\b`,
					`(?i)\bin[\s-]depth\b`,
					`(?i)\bdetailed\s+analysis\b`,
					`(?i)\banaly[sz]e\b`,
					`(?i)\bimplications?\b`,
					`(?i)\bcritically\b`,
					`(?i)\broot\s+cause\b`,
				),
			},
			{
				mode: domain.ModeBrainstorm,
				patterns: compileAll(
					`(?i)\bbrainstorm\b`,
					`(?i)\bideas?\s+(for|to|on)\b`,
					`(?i)\bsuggest\b`,
					`(?i)\bways\s+to\b`,
					`(?i)\binnovative\b`,
					`(?i)\balternatives?\b`,
				),
			},
			{
				mode: domain.ModePolicy,
				patterns: compileAll(
					`(?i)\bpolicy\s+(design|framework|recommendation|option)s?\b`,
					`(?i)\bframework\b`,
					`(?i)\broadmap\b`,
					`(?i)\bstrategy\b`,
					`(?i)\bscheme\s+design\b`,
					`(?i)\bintervention\b`,
				),
			},
			{
				mode: domain.ModeCompliance,
				patterns: compileAll(
					`(?i)\bcomplian(t|ce)\b`,
					`(?i)\bviolat(e|ion|ing)s?\b`,
					`(?i)\bpenalt(y|ies)\b`,
					`(?i)\bmandator(y|ily)\b`,
					`(?i)\baudit\b`,
					`(?i)\blegal\s+requirements?\b`,
					`(?i)\bdeadline\b`,
				),
			},
		},
	}
}

// Classify scores each mode by the number of distinct trigger patterns
// matching the query. Zero matches everywhere defaults to qa; ties go to
// the fixed priority order.
func (c *QueryClassifier) Classify(query string) domain.QueryMode {
	scores := make(map[domain.QueryMode]int, len(c.triggers))
	for _, mt := range c.triggers {
		count := 0
		for _, p := range mt.patterns {
			if p.MatchString(query) {
				count++
			}
		}
		scores[mt.mode] = count
	}

	best := domain.ModeQA
	bestScore := 0
	for _, mode := range modePriority {
		if scores[mode] > bestScore {
			best = mode
			bestScore = scores[mode]
		}
	}
	return best
}

// ClassifyWithConfig resolves the mode together with its static
// configuration record.
func (c *QueryClassifier) ClassifyWithConfig(query string) (domain.QueryMode, domain.ModeConfig) {
	mode := c.Classify(query)
	return mode, domain.ConfigFor(mode)
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}
