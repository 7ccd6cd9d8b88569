package ports

import (
	"context"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// Embedder builds vectors for query text.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// BatchEmbedder builds vectors for document chunks during ingestion.
type BatchEmbedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ChunkIndexer writes chunks and their vectors into the vertical's
// collection.
type ChunkIndexer interface {
	IndexChunks(ctx context.Context, vertical domain.Vertical, chunks []domain.Chunk, vectors [][]float32) error
}

// VectorSearcher is the similarity-search oracle over the per-vertical
// collections. The store owns chunk persistence and indexing.
type VectorSearcher interface {
	Search(ctx context.Context, queryVector []float32, vertical domain.Vertical, limit int) ([]domain.SearchResult, error)
	SearchLexical(ctx context.Context, queryText string, vertical domain.Vertical, limit int) ([]domain.SearchResult, error)
}

// ChunkSource streams every indexed chunk once, for batch passes such as
// the clause-index rebuild.
type ChunkSource interface {
	ScrollChunks(ctx context.Context, vertical domain.Vertical, fn func(domain.Chunk) error) error
}

// WebSearcher is the optional live web search capability. A nil
// collaborator degrades internet features to a no-op.
type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.WebResult, error)
}

// CrossEncoderScorer scores (query, passage) pairs jointly. Absence or
// failure degrades to pass-through ranking.
type CrossEncoderScorer interface {
	ScorePairs(ctx context.Context, query string, texts []string) ([]float64, error)
}

// RelevanceJudge is the optional LLM-scored relevance channel. Malformed
// output is treated as channel absence, never propagated.
type RelevanceJudge interface {
	JudgeRelevance(ctx context.Context, query string, texts []string) ([]float64, error)
}

// ClauseIndexStore persists clause index snapshots. Rebuilds replace the
// whole snapshot; there is no incremental upsert.
type ClauseIndexStore interface {
	SaveEntries(ctx context.Context, entries []domain.ClauseEntry) error
	LoadEntries(ctx context.Context) ([]domain.ClauseEntry, error)
}

// DocumentRepository persists the citation metadata registry.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, vertical domain.Vertical, limit int) ([]domain.Document, error)
}

// MessageQueue carries clause-index rebuild events between api and
// worker processes.
type MessageQueue interface {
	PublishRebuildRequested(ctx context.Context, reason string) error
	SubscribeRebuildRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// RetrievalCache is the optional response cache. Implementations must be
// nil-tolerant on the caller side: cache errors never fail a query.
type RetrievalCache interface {
	Get(ctx context.Context, mode domain.QueryMode, query string) (*domain.RetrievalResponse, bool)
	Set(ctx context.Context, mode domain.QueryMode, query string, resp *domain.RetrievalResponse)
}
