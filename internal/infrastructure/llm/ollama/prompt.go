package ollama

import (
	"fmt"
	"strings"
)

func buildRelevancePrompt(query string, texts []string) string {
	const maxSnippet = 2000

	var passages strings.Builder
	for idx, text := range texts {
		snippet := text
		if len(snippet) > maxSnippet {
			snippet = snippet[:maxSnippet]
		}
		passages.WriteString(fmt.Sprintf("[%d]\n%s\n\n", idx+1, snippet))
	}

	return fmt.Sprintf(`You are a relevance judge for government policy documents.
Score how relevant each passage is to the query, from 0 (unrelated) to 1 (directly answers it).
Return strict JSON object with one key:
scores (array of %d numbers, in passage order).
No markdown, no extra keys.

Query:
%s

Passages:
%s`, len(texts), query, passages.String())
}
