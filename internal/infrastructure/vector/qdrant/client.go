package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

const (
	denseVectorName  = "dense"
	sparseVectorName = "lexical"
	scrollPageSize   = 256
)

// Client talks to one Qdrant instance holding a collection per vertical.
// Collections carry a named dense vector and a named sparse vector so the
// same points serve both similarity and lexical search.
type Client struct {
	baseURL          string
	collectionPrefix string
	httpClient       *http.Client

	ensureMu sync.Mutex
	ensured  map[string]int
}

func New(baseURL, collectionPrefix string) *Client {
	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		collectionPrefix: collectionPrefix,
		httpClient:       &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) collectionFor(vertical domain.Vertical) string {
	return fmt.Sprintf("%s_%s", c.collectionPrefix, vertical)
}

// IndexChunks upserts chunks into the vertical's collection with both the
// dense vector and the derived sparse vector.
func (c *Client) IndexChunks(ctx context.Context, vertical domain.Vertical, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) == 0 || len(vectors) == 0 {
		return nil
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks/vectors mismatch")
	}

	collection := c.collectionFor(vertical)
	if err := c.ensureCollection(ctx, collection, len(vectors[0])); err != nil {
		return err
	}

	type point struct {
		ID      string         `json:"id"`
		Vector  map[string]any `json:"vector"`
		Payload map[string]any `json:"payload"`
	}

	points := make([]point, 0, len(chunks))
	for i, chunk := range chunks {
		id := chunk.ID
		if id == "" {
			id = uuid.NewString()
		}
		points = append(points, point{
			ID: id,
			Vector: map[string]any{
				denseVectorName:  vectors[i],
				sparseVectorName: encodeSparseChunk(chunk),
			},
			Payload: map[string]any{
				"chunk_id":    id,
				"document_id": chunk.DocumentID,
				"vertical":    string(chunk.Vertical),
				"text":        chunk.Text,
				"year":        chunk.Year,
			},
		})
	}

	body, err := json.Marshal(map[string]any{"points": points})
	if err != nil {
		return fmt.Errorf("marshal upsert body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant upsert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant upsert status: %s: %s", resp.Status, readErrorBody(resp.Body))
	}
	return nil
}

// Search runs dense similarity search. An empty vertical fans out across
// every collection and merges by score.
func (c *Client) Search(ctx context.Context, queryVector []float32, vertical domain.Vertical, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	query := map[string]any{
		"query": queryVector,
		"using": denseVectorName,
	}
	return c.queryVerticals(ctx, query, vertical, limit, func(score float64) domain.SearchResult {
		return domain.SearchResult{VectorScore: score, FinalScore: score}
	})
}

// SearchLexical runs sparse-vector search over the same collections,
// filling the bm25 score channel.
func (c *Client) SearchLexical(ctx context.Context, queryText string, vertical domain.Vertical, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	sparse := encodeSparseQuery(queryText)
	if len(sparse.Indices) == 0 {
		return nil, nil
	}
	query := map[string]any{
		"query": sparse,
		"using": sparseVectorName,
	}
	return c.queryVerticals(ctx, query, vertical, limit, func(score float64) domain.SearchResult {
		return domain.SearchResult{BM25Score: score}
	})
}

func (c *Client) queryVerticals(
	ctx context.Context,
	query map[string]any,
	vertical domain.Vertical,
	limit int,
	seed func(score float64) domain.SearchResult,
) ([]domain.SearchResult, error) {
	verticals := []domain.Vertical{vertical}
	if vertical == "" {
		verticals = domain.Verticals()
	}

	var out []domain.SearchResult
	for _, v := range verticals {
		points, err := c.queryCollection(ctx, c.collectionFor(v), query, limit)
		if err != nil {
			if vertical == "" && isMissingCollection(err) {
				continue
			}
			return nil, err
		}
		for _, p := range points {
			r := seed(p.Score)
			r.ChunkID = getStringPayload(p.Payload, "chunk_id")
			r.DocumentID = getStringPayload(p.Payload, "document_id")
			r.Text = getStringPayload(p.Payload, "text")
			r.Vertical = domain.Vertical(getStringPayload(p.Payload, "vertical"))
			r.Source = domain.SourceVectorDB
			out = append(out, r)
		}
	}

	sortByScoreDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *Client) queryCollection(ctx context.Context, collection string, query map[string]any, limit int) ([]queryPoint, error) {
	reqBody := make(map[string]any, len(query)+2)
	for k, v := range query {
		reqBody[k] = v
	}
	reqBody["limit"] = limit
	reqBody["with_payload"] = true

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal query body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/query", c.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant query request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errMissingCollection
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qdrant query status: %s: %s", resp.Status, readErrorBody(resp.Body))
	}
	return decodeQueryPoints(resp.Body)
}

// ScrollChunks pages through every point of the vertical's collection and
// hands each chunk to fn. A missing collection scrolls zero chunks.
func (c *Client) ScrollChunks(ctx context.Context, vertical domain.Vertical, fn func(domain.Chunk) error) error {
	collection := c.collectionFor(vertical)
	var offset any

	for {
		reqBody := map[string]any{
			"limit":        scrollPageSize,
			"with_payload": true,
		}
		if offset != nil {
			reqBody["offset"] = offset
		}
		body, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal scroll body: %w", err)
		}

		url := fmt.Sprintf("%s/collections/%s/points/scroll", c.baseURL, collection)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create scroll request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("qdrant scroll request: %w", err)
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return nil
		}
		if resp.StatusCode >= 300 {
			msg := readErrorBody(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("qdrant scroll status: %s: %s", resp.Status, msg)
		}

		var scrollResp struct {
			Result struct {
				Points         []queryPoint `json:"points"`
				NextPageOffset any          `json:"next_page_offset"`
			} `json:"result"`
		}
		err = json.NewDecoder(resp.Body).Decode(&scrollResp)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode scroll response: %w", err)
		}

		for _, p := range scrollResp.Result.Points {
			chunk := domain.Chunk{
				ID:         getStringPayload(p.Payload, "chunk_id"),
				DocumentID: getStringPayload(p.Payload, "document_id"),
				Text:       getStringPayload(p.Payload, "text"),
				Vertical:   domain.Vertical(getStringPayload(p.Payload, "vertical")),
				Year:       getIntPayload(p.Payload, "year"),
			}
			if chunk.Vertical == "" {
				chunk.Vertical = vertical
			}
			if err := fn(chunk); err != nil {
				return err
			}
		}

		offset = scrollResp.Result.NextPageOffset
		if offset == nil || len(scrollResp.Result.Points) == 0 {
			return nil
		}
	}
}

func (c *Client) ensureCollection(ctx context.Context, collection string, vectorSize int) error {
	c.ensureMu.Lock()
	if c.ensured == nil {
		c.ensured = make(map[string]int)
	}
	if size, ok := c.ensured[collection]; ok && size == vectorSize {
		c.ensureMu.Unlock()
		return nil
	}
	c.ensureMu.Unlock()

	body, err := json.Marshal(map[string]any{
		"vectors": map[string]any{
			denseVectorName: map[string]any{
				"size":     vectorSize,
				"distance": "Cosine",
			},
		},
		"sparse_vectors": map[string]any{
			sparseVectorName: map[string]any{},
		},
	})
	if err != nil {
		return fmt.Errorf("marshal create collection body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s", c.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create collection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant ensure collection request: %w", err)
	}
	defer resp.Body.Close()

	// 200/201 for create, 409 if already exists (depends on version/config).
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("qdrant ensure collection status: %s: %s", resp.Status, readErrorBody(resp.Body))
	}

	c.ensureMu.Lock()
	c.ensured[collection] = vectorSize
	c.ensureMu.Unlock()
	return nil
}

var errMissingCollection = fmt.Errorf("collection not found")

func isMissingCollection(err error) bool {
	return err == errMissingCollection
}

type queryPoint struct {
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

func decodeQueryPoints(r io.Reader) ([]queryPoint, error) {
	var queryResp struct {
		Result struct {
			Points []queryPoint `json:"points"`
		} `json:"result"`
	}
	if err := json.NewDecoder(r).Decode(&queryResp); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return queryResp.Result.Points, nil
}

func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 2048))
	return strings.TrimSpace(string(body))
}

func sortByScoreDesc(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		return a.VectorScore+a.BM25Score > b.VectorScore+b.BM25Score
	})
}

func getStringPayload(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func getIntPayload(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}
