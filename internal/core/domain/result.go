package domain

// SourceType distinguishes where a candidate came from.
type SourceType string

const (
	SourceVectorDB SourceType = "vector_db"
	SourceInternet SourceType = "internet"
)

// SearchResult is a candidate produced by any retrieval stage. It is
// created per query and discarded after the response. A missing score
// channel is an explicit zero, never a skipped term.
type SearchResult struct {
	ChunkID    string     `json:"chunk_id,omitempty"`
	DocumentID string     `json:"document_id,omitempty"`
	Title      string     `json:"title,omitempty"`
	URL        string     `json:"url,omitempty"`
	Text       string     `json:"text"`
	Snippet    string     `json:"snippet,omitempty"`
	Vertical   Vertical   `json:"vertical,omitempty"`
	Source     SourceType `json:"source"`
	Rank       int        `json:"rank,omitempty"`
	Categories []string   `json:"categories,omitempty"`

	VectorScore       float64 `json:"vector_score,omitempty"`
	BM25Score         float64 `json:"bm25_score,omitempty"`
	LLMScore          float64 `json:"llm_score,omitempty"`
	RecencyScore      float64 `json:"recency_score,omitempty"`
	AuthorityScore    float64 `json:"authority_score,omitempty"`
	CrossEncoderScore float64 `json:"cross_encoder_score,omitempty"`
	FinalScore        float64 `json:"final_score"`
}

// PrimaryCategory reports the first category tag, or "uncategorized"
// when the result carries none. The diversity reranker penalizes by
// this bucket.
func (r SearchResult) PrimaryCategory() string {
	if len(r.Categories) == 0 {
		return "uncategorized"
	}
	return r.Categories[0]
}

// HasAnyScore reports whether at least one score channel was set.
// Fusion requires this before combining channels.
func (r SearchResult) HasAnyScore() bool {
	return r.VectorScore != 0 ||
		r.BM25Score != 0 ||
		r.LLMScore != 0 ||
		r.RecencyScore != 0 ||
		r.AuthorityScore != 0 ||
		r.CrossEncoderScore != 0 ||
		r.FinalScore != 0
}

// WebResult is a raw hit from the web search collaborator.
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Rank    int    `json:"rank"`
}

// RetrievalResponse is the ranked output of one pipeline invocation.
type RetrievalResponse struct {
	Mode           QueryMode      `json:"mode"`
	Results        []SearchResult `json:"results"`
	ClauseMatches  []ClauseEntry  `json:"clause_matches,omitempty"`
	ClauseFastPath bool           `json:"clause_fast_path"`
	UsedInternet   bool           `json:"used_internet"`
}
