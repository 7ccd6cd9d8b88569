package domain

// ClauseType names the structured legal locator kinds the clause index
// recognizes.
type ClauseType string

const (
	ClauseSection    ClauseType = "section"
	ClauseRule       ClauseType = "rule"
	ClauseArticle    ClauseType = "article"
	ClauseClause     ClauseType = "clause"
	ClauseSubSection ClauseType = "sub-section"
	ClauseSubRule    ClauseType = "sub-rule"
	ClauseChapter    ClauseType = "chapter"
	ClausePart       ClauseType = "part"
	ClauseSchedule   ClauseType = "schedule"
	ClauseAmendment  ClauseType = "amendment"
)

// ClauseEntry is a derived index record mapping a normalized clause key
// (e.g. "rte section 12") to its best-matching source chunk. Entries are
// built in a batch pass and queried read-only; confidence is always in
// [0,1] and keys are unique within one index.
type ClauseEntry struct {
	Key        string     `json:"key"`
	Type       ClauseType `json:"type"`
	ChunkID    string     `json:"chunk_id"`
	DocumentID string     `json:"document_id"`
	Preview    string     `json:"preview"`
	Confidence float64    `json:"confidence"`
	Vertical   Vertical   `json:"vertical"`
}
