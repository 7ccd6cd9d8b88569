package chunking

import (
	"regexp"
	"strings"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

var (
	actRe      = regexp.MustCompile(`\b(?:[A-Z][A-Za-z]*\s+(?:(?:to|of|the|and|for)\s+)?)*Act\b(?:,?\s+(?:19|20)\d{2})?`)
	sectionRe  = regexp.MustCompile(`(?i)\bsection\s+\d+[A-Za-z]?(?:\(\d+\))?`)
	goNumberRe = regexp.MustCompile(`(?i)\bG\.?O\.?\s*(?:\(?Ms\)?\.?\s*)?No\.?\s*\d+`)
)

// ExtractEntities pulls structured references out of chunk text: act
// names, section locators and government order numbers. Duplicates are
// collapsed case-insensitively, first spelling wins.
func ExtractEntities(text string) domain.ChunkEntities {
	return domain.ChunkEntities{
		Acts:      dedupeMatches(actRe.FindAllString(text, -1)),
		Sections:  dedupeMatches(sectionRe.FindAllString(text, -1)),
		GONumbers: dedupeMatches(goNumberRe.FindAllString(text, -1)),
	}
}

func dedupeMatches(matches []string) []string {
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		key := strings.ToLower(m)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}
