package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

type crossEncoderFake struct {
	scores   []float64
	err      error
	block    bool
	gotTexts []string
}

func (f *crossEncoderFake) ScorePairs(ctx context.Context, _ string, texts []string) ([]float64, error) {
	f.gotTexts = texts
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func makeResults(scores ...float64) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(scores))
	for i, s := range scores {
		out = append(out, domain.SearchResult{
			ChunkID:    string(rune('a' + i)),
			Text:       "candidate text",
			FinalScore: s,
		})
	}
	return out
}

func TestCrossEncoderRerankReordersByScore(t *testing.T) {
	fake := &crossEncoderFake{scores: []float64{0.1, 0.9, 0.5}}
	r := NewCrossEncoderReranker(fake, time.Second, nil)

	out := r.Rerank(context.Background(), "q", makeResults(0.9, 0.8, 0.7), 3, domain.ModeQA)
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	if out[0].ChunkID != "b" || out[1].ChunkID != "c" || out[2].ChunkID != "a" {
		t.Fatalf("unexpected order: %+v", out)
	}
	if out[0].CrossEncoderScore != 0.9 || out[0].FinalScore != 0.9 {
		t.Fatalf("model score not applied: %+v", out[0])
	}
}

func TestCrossEncoderRerankTimeoutFallsBackToOriginalOrder(t *testing.T) {
	fake := &crossEncoderFake{block: true}
	r := NewCrossEncoderReranker(fake, 20*time.Millisecond, nil)

	in := makeResults(0.9, 0.8, 0.7, 0.6)
	out := r.Rerank(context.Background(), "q", in, 3, domain.ModeQA)
	if !reflect.DeepEqual(out, in[:3]) {
		t.Fatalf("timeout fallback must return first top_k unchanged, got %+v", out)
	}
	for _, r := range out {
		if r.CrossEncoderScore != 0 {
			t.Fatalf("scores must not be mutated on timeout: %+v", r)
		}
	}
}

func TestCrossEncoderRerankErrorFallsBack(t *testing.T) {
	fake := &crossEncoderFake{err: errors.New("model unavailable")}
	r := NewCrossEncoderReranker(fake, time.Second, nil)

	in := makeResults(0.9, 0.8)
	out := r.Rerank(context.Background(), "q", in, 2, domain.ModeQA)
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("error fallback must pass through, got %+v", out)
	}
}

func TestCrossEncoderRerankNilScorerPassesThrough(t *testing.T) {
	r := NewCrossEncoderReranker(nil, time.Second, nil)
	in := makeResults(0.9, 0.8, 0.7)
	out := r.Rerank(context.Background(), "q", in, 2, domain.ModeQA)
	if len(out) != 2 || out[0].ChunkID != "a" {
		t.Fatalf("nil scorer must pass through top_k: %+v", out)
	}
}

func TestCrossEncoderWindowByMode(t *testing.T) {
	if w := crossEncoderWindow(domain.ModeQA); w != 25 {
		t.Fatalf("qa window = %d, want 25", w)
	}
	if w := crossEncoderWindow(domain.ModePolicy); w != 30 {
		t.Fatalf("policy window = %d, want 30", w)
	}
	if w := crossEncoderWindow(domain.ModeBrainstorm); w != 30 {
		t.Fatalf("brainstorm window = %d, want 30", w)
	}
	if w := crossEncoderWindow(domain.ModeCompliance); w != 25 {
		t.Fatalf("compliance window = %d, want 25", w)
	}
}

func TestCrossEncoderTruncatesCandidateText(t *testing.T) {
	fake := &crossEncoderFake{scores: []float64{0.5}}
	r := NewCrossEncoderReranker(fake, time.Second, nil)

	long := strings.Repeat("word ", 600)
	in := []domain.SearchResult{{ChunkID: "a", Text: long, FinalScore: 0.9}}
	r.Rerank(context.Background(), "q", in, 1, domain.ModeQA)

	if len(fake.gotTexts) != 1 {
		t.Fatalf("expected 1 scored text")
	}
	if words := len(strings.Fields(fake.gotTexts[0])); words != 500 {
		t.Fatalf("expected 500-word truncation, got %d words", words)
	}
}
