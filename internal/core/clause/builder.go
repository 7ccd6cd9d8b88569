package clause

import (
	"regexp"
	"strings"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

const (
	baseConfidence        = 0.5
	contextBonus          = 0.3
	earlyPositionBonus    = 0.2
	midPositionBonus      = 0.1
	boilerplateTermWeight = 0.03
	boilerplateCap        = 0.2
	boilerplateWindow     = 200
	previewLength         = 240
)

// Builder scans chunk text with the clause pattern table and produces
// confidence-scored index entries. It is stateless and safe for
// concurrent use.
type Builder struct {
	patterns    []Pattern
	contexts    []string
	boilerplate *regexp.Regexp
}

// NewBuilder constructs a Builder. Empty arguments fall back to the
// default tables.
func NewBuilder(patterns []Pattern, contexts []string, boilerplateTerms []string) *Builder {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	if len(contexts) == 0 {
		contexts = DefaultActContexts()
	}
	if len(boilerplateTerms) == 0 {
		boilerplateTerms = DefaultBoilerplateTerms()
	}
	escaped := make([]string, 0, len(boilerplateTerms))
	for _, term := range boilerplateTerms {
		escaped = append(escaped, regexp.QuoteMeta(strings.ToLower(term)))
	}
	return &Builder{
		patterns:    patterns,
		contexts:    contexts,
		boilerplate: regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`),
	}
}

func NewDefaultBuilder() *Builder {
	return NewBuilder(nil, nil, nil)
}

// Scan extracts all clause entries from one chunk. Overlapping matches
// are resolved by pattern order: once a span is claimed, later patterns
// skip it, so "sub-section 3" never also yields a "section 3" entry.
func (b *Builder) Scan(chunk domain.Chunk) []domain.ClauseEntry {
	text := chunk.Text
	if strings.TrimSpace(text) == "" {
		return nil
	}

	matches := b.matchLocators(text)
	if len(matches) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	actContext := b.detectContext(lower)

	entries := make([]domain.ClauseEntry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, domain.ClauseEntry{
			Key:        buildKey(actContext, m.clauseType, m.number),
			Type:       m.clauseType,
			ChunkID:    chunk.ID,
			DocumentID: chunk.DocumentID,
			Preview:    preview(text, m.start),
			Confidence: b.confidence(lower, m, actContext != ""),
			Vertical:   chunk.Vertical,
		})
	}
	return entries
}

// MatchQuery applies the same pattern table to free query text and
// returns normalized "type number" tokens for the lookup fallback.
func (b *Builder) MatchQuery(query string) []string {
	matches := b.matchLocators(query)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, string(m.clauseType)+" "+m.number)
	}
	return tokens
}

func (b *Builder) matchLocators(text string) []locatorMatch {
	var claimed [][2]int
	var out []locatorMatch
	for _, p := range b.patterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := idx[0], idx[1]
			if overlapsAny(claimed, start, end) {
				continue
			}
			number := strings.ToLower(text[idx[2]:idx[3]])
			claimed = append(claimed, [2]int{start, end})
			out = append(out, locatorMatch{
				clauseType: p.Type,
				number:     number,
				start:      start,
				end:        end,
			})
		}
	}
	return out
}

func (b *Builder) detectContext(lowerText string) string {
	for _, ctx := range b.contexts {
		if containsWord(lowerText, ctx) {
			return ctx
		}
	}
	return ""
}

func (b *Builder) confidence(lowerText string, m locatorMatch, hasContext bool) float64 {
	score := baseConfidence
	if hasContext {
		score += contextBonus
	}

	textLen := len(lowerText)
	if textLen > 0 {
		switch {
		case m.start <= textLen/10:
			score += earlyPositionBonus
		case m.start <= 3*textLen/10:
			score += midPositionBonus
		}
	}

	winStart := m.start - boilerplateWindow
	if winStart < 0 {
		winStart = 0
	}
	winEnd := m.end + boilerplateWindow
	if winEnd > textLen {
		winEnd = textLen
	}
	terms := len(b.boilerplate.FindAllString(lowerText[winStart:winEnd], -1))
	density := boilerplateTermWeight * float64(terms)
	if density > boilerplateCap {
		density = boilerplateCap
	}
	score += density

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func buildKey(actContext string, clauseType domain.ClauseType, number string) string {
	if actContext != "" {
		return actContext + " " + string(clauseType) + " " + number
	}
	return string(clauseType) + " " + number
}

func preview(text string, start int) string {
	end := start + previewLength
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}

func overlapsAny(claimed [][2]int, start, end int) bool {
	for _, span := range claimed {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}

// containsWord reports a whole-word, case-normalized occurrence of term
// inside lowered text. Multi-word terms match as a phrase.
func containsWord(lowerText, term string) bool {
	term = strings.ToLower(term)
	idx := 0
	for {
		pos := strings.Index(lowerText[idx:], term)
		if pos < 0 {
			return false
		}
		pos += idx
		before := pos - 1
		after := pos + len(term)
		boundedLeft := before < 0 || !isWordByte(lowerText[before])
		boundedRight := after >= len(lowerText) || !isWordByte(lowerText[after])
		if boundedLeft && boundedRight {
			return true
		}
		idx = pos + 1
		if idx >= len(lowerText) {
			return false
		}
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '_'
}
