package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/config"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/clause"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/ports"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/usecase"
	rediscache "github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/cache/redis"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/chunking"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/crossencoder/tei"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/llm/ollama"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/queue/nats"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/repository/postgres"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/resilience"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/storage/localfs"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/vector/qdrant"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/infrastructure/websearch/serper"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	RetrieveUC *usecase.RetrieveUseCase
	RebuildUC  *usecase.RebuildClauseIndexUseCase
	IngestUC   *usecase.IngestDocumentUseCase
	RegistryUC *usecase.DocumentRegistryUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	clauseStore, err := localfs.NewClauseStore(cfg.ClauseSnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("init clause store: %w", err)
	}

	exec := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: exec,
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel)
	embedder := ollama.NewResilientEmbedder(ollama.NewEmbedder(ollamaClient), exec)
	judge := ollama.NewResilientJudge(ollama.NewJudge(ollamaClient), exec)

	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantCollectionPrefix)

	crossEncoder := usecase.NewCrossEncoderReranker(
		tei.New(cfg.TEIRerankerURL),
		time.Duration(cfg.CrossEncoderBudgetSeconds)*time.Second,
		logger,
	)

	var webSearcher ports.WebSearcher
	if cfg.SerperAPIKey != "" {
		webSearcher = serper.New(cfg.SerperAPIKey)
	} else {
		logger.Warn("web_search_disabled", "reason", "SERPER_API_KEY not set")
	}

	var cache ports.RetrievalCache
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		cache = rediscache.NewRetrievalCache(
			redisClient,
			time.Duration(cfg.RedisCacheTTLSeconds)*time.Second,
			logger,
		)
	}

	holder := usecase.NewClauseIndexHolder(nil)
	entries, err := clauseStore.LoadEntries(ctx)
	if err != nil {
		logger.Warn("clause_snapshot_load_failed", "error", err)
	} else if len(entries) > 0 {
		holder.Swap(clause.FromEntries(clause.NewDefaultBuilder(), entries))
		logger.Info("clause_snapshot_loaded", "entries", len(entries))
	}

	registryUC := usecase.NewDocumentRegistryUseCase(repo)
	splitter := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)

	ingestUC := usecase.NewIngestDocumentUseCase(
		registryUC,
		embedder,
		vectorDB,
		queue,
		splitter,
		chunking.ExtractEntities,
		logger,
	)

	rebuildUC := usecase.NewRebuildClauseIndexUseCase(
		vectorDB,
		clauseStore,
		holder,
		nil,
		cfg.RebuildWorkers,
		logger,
	)

	retrieveUC := usecase.NewRetrieveUseCase(usecase.RetrieveDeps{
		Embedder:     embedder,
		VectorDB:     vectorDB,
		WebSearcher:  webSearcher,
		Judge:        judge,
		Cache:        cache,
		ClauseIndex:  holder,
		CrossEncoder: crossEncoder,
		FusionWeights: usecase.FusionWeights{
			Vector:  cfg.FusionWeightVector,
			BM25:    cfg.FusionWeightBM25,
			LLM:     cfg.FusionWeightLLM,
			Recency: cfg.FusionWeightRecency,
		},
		MergeWeights: usecase.MergeWeights{
			VectorDB: cfg.MergeWeightVectorDB,
			Internet: cfg.MergeWeightInternet,
		},
		Logger: logger,
	})

	return &App{
		Config: cfg,
		Logger: logger,
		Queue:  queue,
		Repo:   repo,

		RetrieveUC: retrieveUC,
		RebuildUC:  rebuildUC,
		IngestUC:   ingestUC,
		RegistryUC: registryUC,

		closeFn: func() {
			queue.Close()
			if redisClient != nil {
				_ = redisClient.Close()
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
