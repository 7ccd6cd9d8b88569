package ollama

import (
	"context"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/resilience"
)

// ResilientEmbedder runs embedding calls through the breaker executor.
type ResilientEmbedder struct {
	inner *Embedder
	exec  *resilience.Executor
}

func NewResilientEmbedder(inner *Embedder, exec *resilience.Executor) *ResilientEmbedder {
	return &ResilientEmbedder{inner: inner, exec: exec}
}

func (r *ResilientEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	var out []float32
	err := r.exec.Execute(ctx, "ollama_embed", func(ctx context.Context) error {
		vector, err := r.inner.EmbedQuery(ctx, text)
		if err != nil {
			return err
		}
		out = vector
		return nil
	}, ClassifyError)
	if err != nil {
		return nil, WrapTemporaryIfNeeded("embed query", err)
	}
	return out, nil
}

func (r *ResilientEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var out [][]float32
	err := r.exec.Execute(ctx, "ollama_embed", func(ctx context.Context) error {
		vectors, err := r.inner.Embed(ctx, texts)
		if err != nil {
			return err
		}
		out = vectors
		return nil
	}, ClassifyError)
	if err != nil {
		return nil, WrapTemporaryIfNeeded("embed batch", err)
	}
	return out, nil
}

// ResilientJudge runs relevance judging through the breaker executor.
type ResilientJudge struct {
	inner *Judge
	exec  *resilience.Executor
}

func NewResilientJudge(inner *Judge, exec *resilience.Executor) *ResilientJudge {
	return &ResilientJudge{inner: inner, exec: exec}
}

func (r *ResilientJudge) JudgeRelevance(ctx context.Context, query string, texts []string) ([]float64, error) {
	var out []float64
	err := r.exec.Execute(ctx, "ollama_judge", func(ctx context.Context) error {
		scores, err := r.inner.JudgeRelevance(ctx, query, texts)
		if err != nil {
			return err
		}
		out = scores
		return nil
	}, ClassifyError)
	if err != nil {
		return nil, WrapTemporaryIfNeeded("judge relevance", err)
	}
	return out, nil
}
