package clause

import (
	"sort"
	"strings"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// lookupLimit bounds how many entries a lookup returns.
const lookupLimit = 5

// Index is the precomputed clause-key index. It is built in a batch
// pass, then queried read-only; concurrent readers need no locking as
// long as rebuilds swap in a fresh Index instead of mutating a live one.
type Index struct {
	builder *Builder
	entries map[string]domain.ClauseEntry
}

func NewIndex(builder *Builder) *Index {
	if builder == nil {
		builder = NewDefaultBuilder()
	}
	return &Index{
		builder: builder,
		entries: make(map[string]domain.ClauseEntry),
	}
}

// FromEntries restores an index from a persisted snapshot. Duplicate
// keys keep the higher-confidence entry, same as during a build.
func FromEntries(builder *Builder, entries []domain.ClauseEntry) *Index {
	ix := NewIndex(builder)
	for _, e := range entries {
		ix.Insert(e)
	}
	return ix
}

// Insert adds an entry, keeping the higher-confidence record on key
// conflict. The comparison is explicit: last write does not win.
func (ix *Index) Insert(entry domain.ClauseEntry) bool {
	existing, ok := ix.entries[entry.Key]
	if ok && existing.Confidence >= entry.Confidence {
		return false
	}
	ix.entries[entry.Key] = entry
	return true
}

// AddChunk scans one chunk and inserts every extracted entry.
func (ix *Index) AddChunk(chunk domain.Chunk) int {
	added := 0
	for _, entry := range ix.builder.Scan(chunk) {
		if ix.Insert(entry) {
			added++
		}
	}
	return added
}

func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns all index entries sorted by key, for persistence and
// deterministic comparison between rebuilds.
func (ix *Index) Entries() []domain.ClauseEntry {
	out := make([]domain.ClauseEntry, 0, len(ix.entries))
	for _, e := range ix.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Lookup resolves a free-text query against the index.
//
// Containment direction is fixed: an indexed key must appear inside the
// lowercased query ("what does rte section 12 say" contains
// "rte section 12"). Keys are short normalized strings and the query is
// the longer free-text side, so this is the only direction used.
//
// When no key is contained in the query, the clause patterns are applied
// to the query itself and the resulting "type number" tokens are matched
// inside indexed keys. Hits are deduplicated by (chunk id, preview),
// sorted by confidence descending and capped at five.
func (ix *Index) Lookup(query string) []domain.ClauseEntry {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" || len(ix.entries) == 0 {
		return nil
	}

	var hits []domain.ClauseEntry
	for key, entry := range ix.entries {
		if strings.Contains(queryLower, key) {
			hits = append(hits, entry)
		}
	}

	if len(hits) == 0 {
		for _, token := range ix.builder.MatchQuery(queryLower) {
			for key, entry := range ix.entries {
				if strings.Contains(key, token) {
					hits = append(hits, entry)
				}
			}
		}
	}

	hits = dedupeEntries(hits)
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Confidence != hits[j].Confidence {
			return hits[i].Confidence > hits[j].Confidence
		}
		return hits[i].Key < hits[j].Key
	})
	if len(hits) > lookupLimit {
		hits = hits[:lookupLimit]
	}
	return hits
}

func dedupeEntries(entries []domain.ClauseEntry) []domain.ClauseEntry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0]
	for _, e := range entries {
		key := e.ChunkID + "\x00" + e.Preview
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
