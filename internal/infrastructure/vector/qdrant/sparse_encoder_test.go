package qdrant

import (
	"testing"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

func TestEncodeSparseQueryDeterministic(t *testing.T) {
	v1 := encodeSparseQuery("RTE Act Section 12 admission quota")
	v2 := encodeSparseQuery("RTE Act Section 12 admission quota")
	if len(v1.Indices) != len(v2.Indices) || len(v1.Values) != len(v2.Values) {
		t.Fatalf("vector sizes mismatch: v1=%d/%d v2=%d/%d", len(v1.Indices), len(v1.Values), len(v2.Indices), len(v2.Values))
	}
	for i := range v1.Indices {
		if v1.Indices[i] != v2.Indices[i] {
			t.Fatalf("indices mismatch at %d: %d vs %d", i, v1.Indices[i], v2.Indices[i])
		}
		if v1.Values[i] != v2.Values[i] {
			t.Fatalf("values mismatch at %d: %f vs %f", i, v1.Values[i], v2.Values[i])
		}
	}
}

func TestEncodeSparseQuerySortsIndices(t *testing.T) {
	v := encodeSparseQuery("zulu alpha beta gamma")
	if len(v.Indices) == 0 {
		t.Fatalf("expected non-empty sparse vector")
	}
	for i := 1; i < len(v.Indices); i++ {
		if v.Indices[i-1] > v.Indices[i] {
			t.Fatalf("indices not sorted at %d: %d > %d", i, v.Indices[i-1], v.Indices[i])
		}
	}
}

func TestEncodeSparseQueryEmptyNoiseInput(t *testing.T) {
	v := encodeSparseQuery("___---!!!")
	if len(v.Indices) != 0 || len(v.Values) != 0 {
		t.Fatalf("expected empty sparse vector, got %+v", v)
	}
}

func TestEncodeSparseChunkBoostsEntityTokens(t *testing.T) {
	plain := encodeSparseChunk(domain.Chunk{Text: "admission rules for schools"})
	boosted := encodeSparseChunk(domain.Chunk{
		Text:     "admission rules for schools",
		Entities: domain.ChunkEntities{Acts: []string{"admission"}},
	})

	idx := hashToken("admission")
	plainWeight := sparseValueAt(plain, idx)
	boostedWeight := sparseValueAt(boosted, idx)
	if plainWeight == 0 || boostedWeight == 0 {
		t.Fatalf("admission token missing: plain=%f boosted=%f", plainWeight, boostedWeight)
	}
	if boostedWeight <= plainWeight {
		t.Fatalf("entity token should outweigh body token: plain=%f boosted=%f", plainWeight, boostedWeight)
	}
}

func TestTokenizeAlphaNumDigitsStability(t *testing.T) {
	tokens := tokenizeAlphaNum("GO Ms No 54 dated 12-03-2023")
	foundGo := false
	foundNum := false
	for _, tok := range tokens {
		if tok == "go" {
			foundGo = true
		}
		if tok == "54" {
			foundNum = true
		}
	}
	if !foundGo || !foundNum {
		t.Fatalf("expected go and 54 tokens, got %v", tokens)
	}
}

func sparseValueAt(v sparseVector, idx uint32) float32 {
	for i, candidate := range v.Indices {
		if candidate == idx {
			return v.Values[i]
		}
	}
	return 0
}
