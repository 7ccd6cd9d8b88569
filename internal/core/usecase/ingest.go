package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/ports"
)

// TextSplitter cuts document text into overlapping chunks.
type TextSplitter interface {
	Split(text string) []string
}

// EntityExtractor pulls structured citations out of chunk text.
type EntityExtractor func(text string) domain.ChunkEntities

// IngestDocumentUseCase registers a document and indexes its text:
// split, extract entities, embed, upsert into the vertical's collection,
// then request a clause-index rebuild so new citations become
// resolvable.
type IngestDocumentUseCase struct {
	registrar ports.DocumentRegistrar
	embedder  ports.BatchEmbedder
	indexer   ports.ChunkIndexer
	queue     ports.MessageQueue
	splitter  TextSplitter
	entities  EntityExtractor
	logger    *slog.Logger
}

func NewIngestDocumentUseCase(
	registrar ports.DocumentRegistrar,
	embedder ports.BatchEmbedder,
	indexer ports.ChunkIndexer,
	queue ports.MessageQueue,
	splitter TextSplitter,
	entities EntityExtractor,
	logger *slog.Logger,
) *IngestDocumentUseCase {
	if entities == nil {
		entities = func(string) domain.ChunkEntities { return domain.ChunkEntities{} }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestDocumentUseCase{
		registrar: registrar,
		embedder:  embedder,
		indexer:   indexer,
		queue:     queue,
		splitter:  splitter,
		entities:  entities,
		logger:    logger,
	}
}

// Ingest returns the number of chunks written. Registration and indexing
// are fatal; the rebuild event is best-effort since the next rebuild
// picks the chunks up anyway.
func (uc *IngestDocumentUseCase) Ingest(ctx context.Context, doc *domain.Document, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, domain.WrapError(domain.ErrInvalidInput, "ingest document", fmt.Errorf("text is required"))
	}

	if err := uc.registrar.Register(ctx, doc); err != nil {
		return 0, err
	}

	pieces := uc.splitter.Split(text)
	if len(pieces) == 0 {
		return 0, nil
	}

	vectors, err := uc.embedder.Embed(ctx, pieces)
	if err != nil {
		return 0, domain.WrapError(domain.ErrBackendUnavailable, "embed chunks", err)
	}
	if len(vectors) != len(pieces) {
		return 0, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(pieces))
	}

	chunks := make([]domain.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: doc.ID,
			Text:       piece,
			Vertical:   doc.Vertical,
			Entities:   uc.entities(piece),
			Year:       doc.Year,
		})
	}

	if err := uc.indexer.IndexChunks(ctx, doc.Vertical, chunks, vectors); err != nil {
		return 0, domain.WrapError(domain.ErrBackendUnavailable, "index chunks", err)
	}

	if uc.queue != nil {
		if err := uc.queue.PublishRebuildRequested(ctx, "document "+doc.ID); err != nil {
			uc.logger.Warn("rebuild_event_degraded", "document_id", doc.ID, "error", err)
		}
	}

	uc.logger.Info("document_ingested", "document_id", doc.ID, "vertical", doc.Vertical, "chunks", len(chunks))
	return len(chunks), nil
}
