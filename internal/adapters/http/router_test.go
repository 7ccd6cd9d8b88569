package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/ports"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/observability/metrics"
)

type fakeRetrieval struct {
	resp     *domain.RetrievalResponse
	err      error
	lastOpts ports.RetrievalOptions
}

func (f *fakeRetrieval) Retrieve(_ context.Context, _ string, opts ports.RetrievalOptions) (*domain.RetrievalResponse, error) {
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeClauses struct {
	matches []domain.ClauseEntry
	err     error
}

func (f *fakeClauses) LookupClause(context.Context, string) ([]domain.ClauseEntry, error) {
	return f.matches, f.err
}

type fakeRebuilder struct {
	entries int
	err     error
}

func (f *fakeRebuilder) Rebuild(context.Context) (int, error) {
	return f.entries, f.err
}

type fakeIngestor struct {
	chunks int
	err    error
}

func (f *fakeIngestor) Ingest(_ context.Context, doc *domain.Document, _ string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	doc.ID = "doc-1"
	return f.chunks, nil
}

type fakeRegistrar struct {
	doc     *domain.Document
	docs    []domain.Document
	err     error
	lastID  string
	listErr error
}

func (f *fakeRegistrar) Register(context.Context, *domain.Document) error { return f.err }

func (f *fakeRegistrar) GetByID(_ context.Context, id string) (*domain.Document, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeRegistrar) List(context.Context, domain.Vertical, int) ([]domain.Document, error) {
	return f.docs, f.listErr
}

func newTestRouter(retrieval *fakeRetrieval, clauses *fakeClauses, rebuilder *fakeRebuilder, ingestor *fakeIngestor, registrar *fakeRegistrar) http.Handler {
	if retrieval == nil {
		retrieval = &fakeRetrieval{resp: &domain.RetrievalResponse{Mode: domain.ModeQA}}
	}
	if clauses == nil {
		clauses = &fakeClauses{}
	}
	if rebuilder == nil {
		rebuilder = &fakeRebuilder{}
	}
	if ingestor == nil {
		ingestor = &fakeIngestor{}
	}
	if registrar == nil {
		registrar = &fakeRegistrar{}
	}
	return NewRouter(retrieval, clauses, rebuilder, ingestor, registrar, metrics.NewAPIServerMetrics(), nil).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRetrieveReturnsPipelineResponse(t *testing.T) {
	retrieval := &fakeRetrieval{
		resp: &domain.RetrievalResponse{
			Mode: domain.ModeCompliance,
			Results: []domain.SearchResult{
				{ChunkID: "c1", Text: "Section 12 applies.", Source: domain.SourceVectorDB, FinalScore: 0.82},
			},
			UsedInternet: true,
		},
	}
	handler := newTestRouter(retrieval, nil, nil, nil, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/retrieve", map[string]any{
		"query":          "is the school compliant with section 12",
		"top_k":          5,
		"vertical":       "legal",
		"force_internet": true,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if retrieval.lastOpts.TopK != 5 || retrieval.lastOpts.Vertical != domain.VerticalLegal || !retrieval.lastOpts.ForceInternet {
		t.Fatalf("options not forwarded: %+v", retrieval.lastOpts)
	}

	var resp domain.RetrievalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Mode != domain.ModeCompliance {
		t.Fatalf("mode = %q", resp.Mode)
	}
	if len(resp.Results) != 1 || resp.Results[0].ChunkID != "c1" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestRetrieveRejectsEmptyQuery(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/retrieve", map[string]any{"query": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRetrieveRejectsUnknownVertical(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/retrieve", map[string]any{
		"query":    "minimum wages notification",
		"vertical": "folklore",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "folklore") {
		t.Fatalf("error should name the vertical: %s", rec.Body.String())
	}
}

func TestRetrieveMapsBackendFailureTo503(t *testing.T) {
	retrieval := &fakeRetrieval{
		err: domain.WrapError(domain.ErrBackendUnavailable, "dense search", errors.New("connection refused")),
	}
	handler := newTestRouter(retrieval, nil, nil, nil, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/retrieve", map[string]any{"query": "land ceiling act"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLookupClauseReturnsMatches(t *testing.T) {
	clauses := &fakeClauses{
		matches: []domain.ClauseEntry{
			{Key: "section 12 rte act", Type: domain.ClauseSection, ChunkID: "c9", Confidence: 0.8},
		},
	}
	handler := newTestRouter(nil, clauses, nil, nil, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/clauses/lookup", map[string]any{
		"query": "what does section 12 of the rte act say",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Matches []domain.ClauseEntry `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].ChunkID != "c9" {
		t.Fatalf("unexpected matches: %+v", resp.Matches)
	}
}

func TestLookupClauseEmptyResultIsArray(t *testing.T) {
	handler := newTestRouter(nil, &fakeClauses{}, nil, nil, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/clauses/lookup", map[string]any{"query": "section 5"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"matches":[]`) {
		t.Fatalf("matches should be an empty array: %s", rec.Body.String())
	}
}

func TestRebuildClauseIndex(t *testing.T) {
	handler := newTestRouter(nil, nil, &fakeRebuilder{entries: 412}, nil, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/clause-index/rebuild", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"entries":412`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodGet, "/v1/clause-index/rebuild", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d", rec.Code)
	}
}

func TestCreateDocumentReturnsChunkCount(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, &fakeIngestor{chunks: 7}, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/documents", map[string]any{
		"title":    "Right to Education Act",
		"vertical": "legal",
		"doc_type": "act",
		"year":     2009,
		"text":     "Section 12 mandates admission of disadvantaged children.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Document domain.Document `json:"document"`
		Chunks   int             `json:"chunks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Chunks != 7 {
		t.Fatalf("chunks = %d", resp.Chunks)
	}
	if resp.Document.ID != "doc-1" {
		t.Fatalf("document id = %q", resp.Document.ID)
	}
}

func TestCreateDocumentInvalidInputIs400(t *testing.T) {
	ingestor := &fakeIngestor{
		err: domain.WrapError(domain.ErrInvalidInput, "ingest document", errors.New("document text is empty")),
	}
	handler := newTestRouter(nil, nil, nil, ingestor, nil)

	rec := doJSON(t, handler, http.MethodPost, "/v1/documents", map[string]any{
		"title":    "Empty",
		"vertical": "legal",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	registrar := &fakeRegistrar{
		err: domain.WrapError(domain.ErrDocumentNotFound, "get document", errors.New("no rows")),
	}
	handler := newTestRouter(nil, nil, nil, nil, registrar)

	rec := doJSON(t, handler, http.MethodGet, "/v1/documents/missing-id", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if registrar.lastID != "missing-id" {
		t.Fatalf("id = %q", registrar.lastID)
	}
}

func TestListDocumentsRejectsBadLimit(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, nil)

	rec := doJSON(t, handler, http.MethodGet, "/v1/documents?limit=zero", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, nil)

	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("X-Request-Id header not set")
	}
}

func TestRequestIDIsPreserved(t *testing.T) {
	handler := newTestRouter(nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("X-Request-Id = %q", got)
	}
}
