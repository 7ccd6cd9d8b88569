package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/ports"
)

const (
	defaultTopK          = 10
	categoryPredictTopK  = 3
	categoryThreshold    = 0.3
	resultCategoryTopK   = 2
	resultCategoryCutoff = 0.4
	judgeWindow          = 10
	webSearchTimeout     = 5 * time.Second
	judgeTimeout         = 10 * time.Second
)

// RetrieveUseCase orchestrates the retrieval pipeline: mode
// classification, clause fast path, vector retrieval, optional web
// augmentation, cross-encoder reranking, diversity selection and score
// fusion. All collaborators are injected; optional ones may be nil.
type RetrieveUseCase struct {
	embedder     ports.Embedder
	vectorDB     ports.VectorSearcher
	webSearcher  ports.WebSearcher
	judge        ports.RelevanceJudge
	cache        ports.RetrievalCache
	clauseIndex  *ClauseIndexHolder
	classifier   *QueryClassifier
	categories   *CategoryPredictor
	router       *InternetRouter
	crossEncoder *CrossEncoderReranker
	diversity    *DiversityReranker
	webReranker  *InternetReranker
	merger       *InternetMerger
	fusion       *ScoreFusion
	logger       *slog.Logger
	now          func() time.Time
}

// RetrieveDeps bundles the pipeline collaborators for construction.
type RetrieveDeps struct {
	Embedder      ports.Embedder
	VectorDB      ports.VectorSearcher
	WebSearcher   ports.WebSearcher
	Judge         ports.RelevanceJudge
	Cache         ports.RetrievalCache
	ClauseIndex   *ClauseIndexHolder
	CrossEncoder  *CrossEncoderReranker
	FusionWeights FusionWeights
	MergeWeights  MergeWeights
	Logger        *slog.Logger
	Now           func() time.Time
}

func NewRetrieveUseCase(deps RetrieveDeps) *RetrieveUseCase {
	if deps.ClauseIndex == nil {
		deps.ClauseIndex = NewClauseIndexHolder(nil)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.CrossEncoder == nil {
		deps.CrossEncoder = NewCrossEncoderReranker(nil, 0, deps.Logger)
	}
	return &RetrieveUseCase{
		embedder:     deps.Embedder,
		vectorDB:     deps.VectorDB,
		webSearcher:  deps.WebSearcher,
		judge:        deps.Judge,
		cache:        deps.Cache,
		clauseIndex:  deps.ClauseIndex,
		classifier:   NewQueryClassifier(),
		categories:   NewCategoryPredictor(),
		router:       NewInternetRouter(deps.Now),
		crossEncoder: deps.CrossEncoder,
		diversity:    NewDiversityReranker(),
		webReranker:  NewInternetReranker(DefaultInternetBoosts(), deps.Now),
		merger:       NewInternetMerger(deps.MergeWeights),
		fusion:       NewScoreFusion(deps.FusionWeights),
		logger:       deps.Logger,
		now:          deps.Now,
	}
}

// Retrieve runs one synchronous pipeline invocation. Only the primary
// vector channel is fatal; every enrichment stage degrades to the best
// available partial result.
func (uc *RetrieveUseCase) Retrieve(ctx context.Context, query string, opts ports.RetrievalOptions) (*domain.RetrievalResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "retrieve", fmt.Errorf("query is required"))
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	mode, cfg := uc.classifier.ClassifyWithConfig(query)

	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, mode, query); ok {
			return cached, nil
		}
	}

	// Exact clause citations bypass vector search entirely.
	if resp := uc.clauseFastPath(query, mode); resp != nil {
		return resp, nil
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, domain.WrapError(domain.ErrBackendUnavailable, "embed query", err)
	}

	candidates, err := uc.retrieveCandidates(ctx, query, queryVector, opts.Vertical, cfg.CandidateCount)
	if err != nil {
		return nil, err
	}

	uc.enrichSignals(candidates)

	usedInternet := false
	meta := QueryMetadata{DetectedYear: MaxYear(query), ForceInternet: opts.ForceInternet}
	if uc.webSearcher != nil && uc.router.ShouldUseInternet(query, meta) {
		webResults := uc.searchWeb(ctx, query, cfg.CandidateCount)
		if len(webResults) > 0 {
			usedInternet = true
			if uc.router.ShouldPrioritizeInternet(query) {
				candidates = uc.merger.Interleave(candidates, webResults, "1:2")
				if len(candidates) > cfg.CandidateCount {
					candidates = candidates[:cfg.CandidateCount]
				}
			} else {
				candidates = uc.merger.Merge(candidates, webResults, cfg.CandidateCount)
			}
		}
	}

	uc.judgeRelevance(ctx, query, candidates)

	candidates = uc.crossEncoder.Rerank(ctx, query, candidates, cfg.CandidateCount, mode)
	candidates = uc.diversity.Rerank(candidates, cfg.DiversityWeight, topK)
	candidates = uc.fusion.Fuse(candidates)

	resp := &domain.RetrievalResponse{
		Mode:         mode,
		Results:      candidates,
		UsedInternet: usedInternet,
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, mode, query, resp)
	}
	return resp, nil
}

// LookupClause resolves structured citation queries against the clause
// index without touching vector search.
func (uc *RetrieveUseCase) LookupClause(_ context.Context, query string) ([]domain.ClauseEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "clause lookup", fmt.Errorf("query is required"))
	}
	return uc.clauseIndex.Get().Lookup(query), nil
}

// clauseFastPath short-circuits when the query itself carries a clause
// locator and the index resolves it. Returns nil when the full pipeline
// should run.
func (uc *RetrieveUseCase) clauseFastPath(query string, mode domain.QueryMode) *domain.RetrievalResponse {
	index := uc.clauseIndex.Get()
	if index.Len() == 0 {
		return nil
	}
	hits := index.Lookup(query)
	if len(hits) == 0 {
		return nil
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, domain.SearchResult{
			ChunkID:    h.ChunkID,
			DocumentID: h.DocumentID,
			Text:       h.Preview,
			Vertical:   h.Vertical,
			Source:     domain.SourceVectorDB,
			FinalScore: h.Confidence,
		})
	}
	return &domain.RetrievalResponse{
		Mode:           mode,
		Results:        results,
		ClauseMatches:  hits,
		ClauseFastPath: true,
	}
}

// retrieveCandidates runs the primary dense search and the secondary
// lexical channel, joining the bm25 scores onto dense hits by chunk id.
// Dense failure is fatal for the query; lexical failure only loses the
// bm25 channel.
func (uc *RetrieveUseCase) retrieveCandidates(ctx context.Context, query string, queryVector []float32, vertical domain.Vertical, limit int) ([]domain.SearchResult, error) {
	dense, err := uc.vectorDB.Search(ctx, queryVector, vertical, limit)
	if err != nil {
		return nil, domain.WrapError(domain.ErrBackendUnavailable, "vector search", err)
	}

	lexical, err := uc.vectorDB.SearchLexical(ctx, query, vertical, limit)
	if err != nil {
		uc.logger.Warn("lexical_search_degraded", "error", err)
		return dense, nil
	}

	byChunk := make(map[string]int, len(dense))
	for i, r := range dense {
		byChunk[r.ChunkID] = i
	}
	for _, lr := range lexical {
		if idx, ok := byChunk[lr.ChunkID]; ok {
			dense[idx].BM25Score = lr.BM25Score
			continue
		}
		dense = append(dense, lr)
	}
	return dense, nil
}

// enrichSignals attaches category tags, recency and authority scores to
// vector candidates.
func (uc *RetrieveUseCase) enrichSignals(results []domain.SearchResult) {
	currentYear := uc.now().Year()
	for i := range results {
		r := &results[i]
		if len(r.Categories) == 0 {
			r.Categories = uc.categories.Predict(r.Text, resultCategoryTopK, resultCategoryCutoff)
		}
		if r.RecencyScore == 0 {
			r.RecencyScore = RecencyScore(r.Text, currentYear)
		}
		if r.AuthorityScore == 0 {
			r.AuthorityScore = AuthorityScore(verticalSourceLabel(r.Vertical))
		}
	}
}

func (uc *RetrieveUseCase) searchWeb(ctx context.Context, query string, limit int) []domain.SearchResult {
	ctx, cancel := context.WithTimeout(ctx, webSearchTimeout)
	defer cancel()

	raw, err := uc.webSearcher.Search(ctx, query, limit)
	if err != nil {
		uc.logger.Warn("web_search_degraded", "error", err)
		return nil
	}
	return uc.webReranker.Rerank(raw, limit)
}

// judgeRelevance fills the llm score channel for the head of the list.
// Any failure or malformed output is treated as channel absence.
func (uc *RetrieveUseCase) judgeRelevance(ctx context.Context, query string, results []domain.SearchResult) {
	if uc.judge == nil || len(results) == 0 {
		return
	}

	window := judgeWindow
	if window > len(results) {
		window = len(results)
	}
	texts := make([]string, window)
	for i := 0; i < window; i++ {
		texts[i] = truncateWords(results[i].Text, crossEncoderMaxWords)
	}

	ctx, cancel := context.WithTimeout(ctx, judgeTimeout)
	defer cancel()

	scores, err := uc.judge.JudgeRelevance(ctx, query, texts)
	if err != nil || len(scores) != window {
		uc.logger.Warn("llm_judge_degraded", "error", err)
		return
	}
	for i := 0; i < window; i++ {
		results[i].LLMScore = scores[i]
	}
}

// verticalSourceLabel maps a vertical to the source label the authority
// table understands.
func verticalSourceLabel(v domain.Vertical) string {
	switch v {
	case domain.VerticalLegal:
		return "act"
	case domain.VerticalGO:
		return "go"
	case domain.VerticalJudicial:
		return "judgment"
	case domain.VerticalSchemes:
		return "guideline"
	default:
		return ""
	}
}
