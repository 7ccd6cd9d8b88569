package tei

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Client calls a text-embeddings-inference style /rerank endpoint that
// scores (query, passage) pairs with a cross-encoder model.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ScorePairs returns one score per text, in input order. The service
// responds ranked by score, so positions are restored from the returned
// indices.
func (c *Client) ScorePairs(ctx context.Context, query string, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(map[string]any{
		"query": query,
		"texts": texts,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if trimmed := strings.TrimSpace(string(msg)); trimmed != "" {
			return nil, fmt.Errorf("rerank status: %s: %s", resp.Status, trimmed)
		}
		return nil, fmt.Errorf("rerank status: %s", resp.Status)
	}

	var ranked []struct {
		Index int     `json:"index"`
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ranked); err != nil {
		return nil, fmt.Errorf("decode rerank response: %w", err)
	}
	if len(ranked) != len(texts) {
		return nil, fmt.Errorf("rerank result count mismatch: got %d, want %d", len(ranked), len(texts))
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Index < ranked[j].Index })
	scores := make([]float64, len(texts))
	for i, r := range ranked {
		if r.Index < 0 || r.Index >= len(texts) || r.Index != i {
			return nil, fmt.Errorf("rerank result index out of range: %d", r.Index)
		}
		scores[r.Index] = r.Score
	}
	return scores, nil
}
