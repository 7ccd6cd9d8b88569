package config

import "testing"

func TestLoadIncludesPipelineDefaults(t *testing.T) {
	t.Setenv("QDRANT_COLLECTION_PREFIX", "")
	t.Setenv("CROSS_ENCODER_BUDGET_SECONDS", "")
	t.Setenv("FUSION_WEIGHT_VECTOR", "")
	t.Setenv("MERGE_WEIGHT_VECTOR_DB", "")
	t.Setenv("REDIS_CACHE_TTL_SECONDS", "")

	cfg := Load()
	if cfg.QdrantCollectionPrefix != "policy" {
		t.Fatalf("expected default collection prefix policy, got %q", cfg.QdrantCollectionPrefix)
	}
	if cfg.CrossEncoderBudgetSeconds != 8 {
		t.Fatalf("expected default cross-encoder budget 8, got %d", cfg.CrossEncoderBudgetSeconds)
	}
	if cfg.FusionWeightVector != 0.5 {
		t.Fatalf("expected default vector weight 0.5, got %v", cfg.FusionWeightVector)
	}
	if cfg.MergeWeightVectorDB != 0.7 {
		t.Fatalf("expected default merge vector weight 0.7, got %v", cfg.MergeWeightVectorDB)
	}
	if cfg.RedisCacheTTLSeconds != 900 {
		t.Fatalf("expected default cache ttl 900, got %d", cfg.RedisCacheTTLSeconds)
	}
}

func TestLoadParsesPipelineOverrides(t *testing.T) {
	t.Setenv("QDRANT_COLLECTION_PREFIX", "staging")
	t.Setenv("CROSS_ENCODER_BUDGET_SECONDS", "4")
	t.Setenv("FUSION_WEIGHT_VECTOR", "0.6")
	t.Setenv("REBUILD_WORKERS", "8")

	cfg := Load()
	if cfg.QdrantCollectionPrefix != "staging" {
		t.Fatalf("expected collection prefix override, got %q", cfg.QdrantCollectionPrefix)
	}
	if cfg.CrossEncoderBudgetSeconds != 4 {
		t.Fatalf("expected cross-encoder budget 4, got %d", cfg.CrossEncoderBudgetSeconds)
	}
	if cfg.FusionWeightVector != 0.6 {
		t.Fatalf("expected vector weight 0.6, got %v", cfg.FusionWeightVector)
	}
	if cfg.RebuildWorkers != 8 {
		t.Fatalf("expected rebuild workers 8, got %d", cfg.RebuildWorkers)
	}
}

func TestLoadFallsBackOnInvalidNumbers(t *testing.T) {
	t.Setenv("CROSS_ENCODER_BUDGET_SECONDS", "soon")
	t.Setenv("FUSION_WEIGHT_BM25", "a-lot")

	cfg := Load()
	if cfg.CrossEncoderBudgetSeconds != 8 {
		t.Fatalf("expected fallback budget 8, got %d", cfg.CrossEncoderBudgetSeconds)
	}
	if cfg.FusionWeightBM25 != 0.2 {
		t.Fatalf("expected fallback bm25 weight 0.2, got %v", cfg.FusionWeightBM25)
	}
}
