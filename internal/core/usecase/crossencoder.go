package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/ports"
)

const (
	crossEncoderBudget   = 8 * time.Second
	crossEncoderMaxWords = 500
)

// crossEncoderWindow bounds how many leading candidates are scored for a
// given mode; the remainder passes through untouched.
func crossEncoderWindow(mode domain.QueryMode) int {
	switch mode {
	case domain.ModePolicy, domain.ModeBrainstorm:
		return 30
	default:
		return 25
	}
}

// CrossEncoderReranker reorders the head of a candidate list by joint
// (query, passage) relevance under a hard wall-clock budget. The rerank
// is atomic: either every scored candidate gets the model score, or the
// original ordering is returned unchanged. Availability over precision.
type CrossEncoderReranker struct {
	scorer ports.CrossEncoderScorer
	budget time.Duration
	logger *slog.Logger
}

func NewCrossEncoderReranker(scorer ports.CrossEncoderScorer, budget time.Duration, logger *slog.Logger) *CrossEncoderReranker {
	if budget <= 0 {
		budget = crossEncoderBudget
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CrossEncoderReranker{scorer: scorer, budget: budget, logger: logger}
}

// Rerank scores the first window of results and sorts them by model
// score, appends the untouched remainder and truncates to topK. A nil
// scorer, an error or budget expiry all fall back to the original order.
func (r *CrossEncoderReranker) Rerank(ctx context.Context, query string, results []domain.SearchResult, topK int, mode domain.QueryMode) []domain.SearchResult {
	if len(results) == 0 {
		return results
	}
	if topK <= 0 || topK > len(results) {
		topK = len(results)
	}
	if r.scorer == nil {
		return results[:topK]
	}

	window := crossEncoderWindow(mode)
	if window > len(results) {
		window = len(results)
	}

	texts := make([]string, window)
	for i := 0; i < window; i++ {
		texts[i] = truncateWords(results[i].Text, crossEncoderMaxWords)
	}

	scores, err := r.scoreWithBudget(ctx, query, texts)
	if err != nil || len(scores) != window {
		r.logger.Warn("cross_encoder_fallback", "error", err, "window", window)
		return results[:topK]
	}

	head := make([]domain.SearchResult, window)
	copy(head, results[:window])
	for i := range head {
		head[i].CrossEncoderScore = scores[i]
		head[i].FinalScore = scores[i]
	}
	sort.SliceStable(head, func(i, j int) bool {
		return head[i].FinalScore > head[j].FinalScore
	})

	out := make([]domain.SearchResult, 0, len(results))
	out = append(out, head...)
	out = append(out, results[window:]...)
	return out[:topK]
}

func (r *CrossEncoderReranker) scoreWithBudget(ctx context.Context, query string, texts []string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.budget)
	defer cancel()

	type scoreResult struct {
		scores []float64
		err    error
	}
	done := make(chan scoreResult, 1)
	go func() {
		scores, err := r.scorer.ScorePairs(ctx, query, texts)
		done <- scoreResult{scores: scores, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.scores, res.err
	}
}

func truncateWords(text string, maxWords int) string {
	fields := strings.Fields(text)
	if len(fields) <= maxWords {
		return text
	}
	return strings.Join(fields[:maxWords], " ")
}
