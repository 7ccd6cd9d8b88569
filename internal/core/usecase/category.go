package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// categoryKeywords binds one category to its keyword phrase list. Longer
// phrases weigh more: a match contributes its word count to the score.
type categoryKeywords struct {
	name     string
	keywords []string
}

// CategoryPredictor tags queries with the fixed education-policy
// categories by whole-word keyword matching.
type CategoryPredictor struct {
	categories []categoryKeywords
	patterns   map[string][]*regexp.Regexp
	weights    map[string][]int
}

// defaultCategoryTable is declared in priority order; ties in predicted
// score resolve by this order.
func defaultCategoryTable() []categoryKeywords {
	return []categoryKeywords{
		{name: "infrastructure", keywords: []string{
			"infrastructure", "classroom", "building", "toilet", "drinking water",
			"electricity", "playground", "boundary wall", "furniture", "ramp",
		}},
		{name: "safety", keywords: []string{
			"safety", "security", "pocso", "child protection", "fire safety",
			"disaster management", "grievance",
		}},
		{name: "fln", keywords: []string{
			"fln", "foundational literacy", "foundational numeracy", "nipun",
			"early grade reading", "numeracy",
		}},
		{name: "teacher", keywords: []string{
			"teacher", "recruitment", "transfer", "teacher training",
			"professional development", "vacancy", "staffing",
		}},
		{name: "academic", keywords: []string{
			"curriculum", "syllabus", "textbook", "assessment", "examination",
			"learning outcome", "pedagogy",
		}},
		{name: "monitoring", keywords: []string{
			"monitoring", "inspection", "udise", "data collection",
			"review meeting", "dashboard", "attendance",
		}},
		{name: "welfare", keywords: []string{
			"scholarship", "midday meal", "mdm", "uniform", "welfare",
			"incentive", "hostel",
		}},
		{name: "governance", keywords: []string{
			"governance", "smc", "school management committee", "administration",
			"accountability", "grant", "devolution",
		}},
	}
}

func NewCategoryPredictor() *CategoryPredictor {
	return NewCategoryPredictorWithTable(defaultCategoryTable())
}

func NewCategoryPredictorWithTable(table []categoryKeywords) *CategoryPredictor {
	p := &CategoryPredictor{
		categories: table,
		patterns:   make(map[string][]*regexp.Regexp, len(table)),
		weights:    make(map[string][]int, len(table)),
	}
	for _, cat := range table {
		for _, kw := range cat.keywords {
			p.patterns[cat.name] = append(p.patterns[cat.name],
				regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
			p.weights[cat.name] = append(p.weights[cat.name], len(strings.Fields(kw)))
		}
	}
	return p
}

// Predict returns up to topK category names scoring at or above
// threshold after max-normalization. Declaration order breaks score
// ties, so output is deterministic.
func (p *CategoryPredictor) Predict(query string, topK int, threshold float64) []string {
	if topK <= 0 {
		topK = 3
	}

	type scored struct {
		name  string
		score float64
		order int
	}

	var maxScore float64
	results := make([]scored, 0, len(p.categories))
	for i, cat := range p.categories {
		score := 0.0
		for j, pattern := range p.patterns[cat.name] {
			if pattern.MatchString(query) {
				score += float64(p.weights[cat.name][j])
			}
		}
		if score > maxScore {
			maxScore = score
		}
		results = append(results, scored{name: cat.name, score: score, order: i})
	}

	if maxScore == 0 {
		return nil
	}

	kept := results[:0]
	for _, r := range results {
		r.score /= maxScore
		if r.score >= threshold {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		return kept[i].order < kept[j].order
	})

	if len(kept) > topK {
		kept = kept[:topK]
	}
	out := make([]string, 0, len(kept))
	for _, r := range kept {
		out = append(out, r.name)
	}
	return out
}
