package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

const defaultEndpoint = "https://google.serper.dev/search"

// Client queries the Serper search JSON API. Live web search is an
// optional capability: constructing with an empty key yields a client
// that errors, and the caller degrades to vector-only retrieval.
type Client struct {
	endpoint   string
	apiKey     string
	country    string
	httpClient *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		country:    "in",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithEndpoint overrides the API endpoint, for tests.
func NewWithEndpoint(endpoint, apiKey string) *Client {
	c := New(apiKey)
	c.endpoint = strings.TrimRight(endpoint, "/")
	return c
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.WebResult, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("web search api key not configured")
	}
	if limit <= 0 {
		limit = 10
	}

	body, err := json.Marshal(map[string]any{
		"q":   query,
		"gl":  c.country,
		"num": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if trimmed := strings.TrimSpace(string(msg)); trimmed != "" {
			return nil, fmt.Errorf("web search status: %s: %s", resp.Status, trimmed)
		}
		return nil, fmt.Errorf("web search status: %s", resp.Status)
	}

	var searchResp struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.WebResult, 0, len(searchResp.Organic))
	for i, r := range searchResp.Organic {
		if i >= limit {
			break
		}
		out = append(out, domain.WebResult{
			Title:   r.Title,
			URL:     r.Link,
			Snippet: r.Snippet,
			Source:  "serper",
			Rank:    i + 1,
		})
	}
	return out, nil
}
