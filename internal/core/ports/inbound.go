package ports

import (
	"context"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

// RetrievalOptions carries caller-side knobs for one pipeline run.
type RetrievalOptions struct {
	TopK          int
	Vertical      domain.Vertical
	ForceInternet bool
}

// RetrievalService is the inbound contract for the full retrieval
// pipeline: classify, route, retrieve, rerank, fuse.
type RetrievalService interface {
	Retrieve(ctx context.Context, query string, opts RetrievalOptions) (*domain.RetrievalResponse, error)
}

// ClauseLookupService resolves structured clause citations directly,
// bypassing vector search.
type ClauseLookupService interface {
	LookupClause(ctx context.Context, query string) ([]domain.ClauseEntry, error)
}

// ClauseIndexRebuilder runs a full, idempotent rebuild of the clause
// index from the chunk source.
type ClauseIndexRebuilder interface {
	Rebuild(ctx context.Context) (int, error)
}

// DocumentIngestor registers a document and indexes its text as chunks,
// returning how many chunks were written.
type DocumentIngestor interface {
	Ingest(ctx context.Context, doc *domain.Document, text string) (int, error)
}

// DocumentRegistrar manages the citation metadata registry.
type DocumentRegistrar interface {
	Register(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, vertical domain.Vertical, limit int) ([]domain.Document, error)
}
