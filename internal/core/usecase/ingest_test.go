package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

type fakeBatchEmbedder struct {
	err error
}

func (f *fakeBatchEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 0.5}
	}
	return out, nil
}

type fakeChunkIndexer struct {
	vertical domain.Vertical
	chunks   []domain.Chunk
	err      error
}

func (f *fakeChunkIndexer) IndexChunks(_ context.Context, vertical domain.Vertical, chunks []domain.Chunk, vectors [][]float32) error {
	if f.err != nil {
		return f.err
	}
	if len(chunks) != len(vectors) {
		return errors.New("chunk/vector mismatch")
	}
	f.vertical = vertical
	f.chunks = chunks
	return nil
}

type fakeQueue struct {
	published []string
	err       error
}

func (f *fakeQueue) PublishRebuildRequested(_ context.Context, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, reason)
	return nil
}

func (f *fakeQueue) SubscribeRebuildRequested(context.Context, func(context.Context, string) error) error {
	return nil
}

type wordSplitter struct{ perChunk int }

func (s wordSplitter) Split(text string) []string {
	words := strings.Fields(text)
	var out []string
	for start := 0; start < len(words); start += s.perChunk {
		end := start + s.perChunk
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[start:end], " "))
	}
	return out
}

func TestIngestRegistersAndIndexesChunks(t *testing.T) {
	repo := newFakeDocumentRepo()
	indexer := &fakeChunkIndexer{}
	queue := &fakeQueue{}
	uc := NewIngestDocumentUseCase(
		NewDocumentRegistryUseCase(repo),
		&fakeBatchEmbedder{},
		indexer,
		queue,
		wordSplitter{perChunk: 3},
		func(string) domain.ChunkEntities {
			return domain.ChunkEntities{Sections: []string{"section 12"}}
		},
		nil,
	)

	doc := &domain.Document{Title: "RTE Act 2009", Vertical: domain.VerticalLegal, Year: 2009}
	count, err := uc.Ingest(context.Background(), doc, "one two three four five")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if count != 2 || len(indexer.chunks) != 2 {
		t.Fatalf("expected 2 chunks, got count=%d indexed=%d", count, len(indexer.chunks))
	}
	if len(repo.created) != 1 {
		t.Fatalf("document not registered")
	}
	if indexer.vertical != domain.VerticalLegal {
		t.Fatalf("chunks routed to wrong vertical: %s", indexer.vertical)
	}
	chunk := indexer.chunks[0]
	if chunk.DocumentID != doc.ID || chunk.Year != 2009 || len(chunk.Entities.Sections) != 1 {
		t.Fatalf("chunk metadata not filled: %+v", chunk)
	}
	if len(queue.published) != 1 || !strings.Contains(queue.published[0], doc.ID) {
		t.Fatalf("rebuild event not published: %v", queue.published)
	}
}

func TestIngestRejectsEmptyText(t *testing.T) {
	uc := NewIngestDocumentUseCase(
		NewDocumentRegistryUseCase(newFakeDocumentRepo()),
		&fakeBatchEmbedder{},
		&fakeChunkIndexer{},
		nil,
		wordSplitter{perChunk: 3},
		nil,
		nil,
	)
	doc := &domain.Document{Title: "NEP 2020", Vertical: domain.VerticalLegal}
	if _, err := uc.Ingest(context.Background(), doc, "   "); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestIngestEmbedFailureIsFatal(t *testing.T) {
	uc := NewIngestDocumentUseCase(
		NewDocumentRegistryUseCase(newFakeDocumentRepo()),
		&fakeBatchEmbedder{err: errors.New("model offline")},
		&fakeChunkIndexer{},
		nil,
		wordSplitter{perChunk: 3},
		nil,
		nil,
	)
	doc := &domain.Document{Title: "NEP 2020", Vertical: domain.VerticalLegal}
	if _, err := uc.Ingest(context.Background(), doc, "some text"); !domain.IsKind(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable, got %v", err)
	}
}

func TestIngestQueueFailureDegrades(t *testing.T) {
	uc := NewIngestDocumentUseCase(
		NewDocumentRegistryUseCase(newFakeDocumentRepo()),
		&fakeBatchEmbedder{},
		&fakeChunkIndexer{},
		&fakeQueue{err: errors.New("nats down")},
		wordSplitter{perChunk: 3},
		nil,
		nil,
	)
	doc := &domain.Document{Title: "NEP 2020", Vertical: domain.VerticalLegal}
	count, err := uc.Ingest(context.Background(), doc, "some text here")
	if err != nil {
		t.Fatalf("queue failure must not fail ingestion: %v", err)
	}
	if count == 0 {
		t.Fatalf("chunks should still be indexed")
	}
}
