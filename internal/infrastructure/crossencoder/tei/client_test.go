package tei

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestScorePairsRestoresInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rerank" {
			http.NotFound(w, r)
			return
		}
		var payload struct {
			Query string   `json:"query"`
			Texts []string `json:"texts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Query != "section 12" || len(payload.Texts) != 3 {
			t.Fatalf("unexpected request: %+v", payload)
		}
		// Ranked by score, not by input position.
		_, _ = w.Write([]byte(`[{"index":2,"score":0.95},{"index":0,"score":0.40},{"index":1,"score":0.10}]`))
	}))
	defer server.Close()

	client := New(server.URL)
	scores, err := client.ScorePairs(context.Background(), "section 12", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("ScorePairs() error = %v", err)
	}
	want := []float64{0.40, 0.10, 0.95}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("score[%d] = %f, want %f", i, scores[i], want[i])
		}
	}
}

func TestScorePairsCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"index":0,"score":0.5}]`))
	}))
	defer server.Close()

	client := New(server.URL)
	if _, err := client.ScorePairs(context.Background(), "q", []string{"a", "b"}); err == nil {
		t.Fatalf("expected count mismatch error")
	}
}

func TestScorePairsIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model warming up", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.ScorePairs(context.Background(), "q", []string{"a"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model warming up") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestScorePairsEmptyInput(t *testing.T) {
	client := New("http://unused")
	scores, err := client.ScorePairs(context.Background(), "q", nil)
	if err != nil || scores != nil {
		t.Fatalf("empty input should no-op, got %v / %v", scores, err)
	}
}
