package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/ports"
	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/observability/metrics"
)

const maxRequestBody = 1 << 20

// Router exposes the retrieval pipeline and the document registry over
// HTTP. All handlers speak JSON.
type Router struct {
	retrieval ports.RetrievalService
	clauses   ports.ClauseLookupService
	rebuilder ports.ClauseIndexRebuilder
	ingestor  ports.DocumentIngestor
	registrar ports.DocumentRegistrar
	metrics   *metrics.APIServerMetrics
	logger    *slog.Logger
}

func NewRouter(
	retrieval ports.RetrievalService,
	clauses ports.ClauseLookupService,
	rebuilder ports.ClauseIndexRebuilder,
	ingestor ports.DocumentIngestor,
	registrar ports.DocumentRegistrar,
	m *metrics.APIServerMetrics,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		retrieval: retrieval,
		clauses:   clauses,
		rebuilder: rebuilder,
		ingestor:  ingestor,
		registrar: registrar,
		metrics:   m,
		logger:    logger,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/retrieve", rt.retrieve)
	mux.HandleFunc("/v1/clauses/lookup", rt.lookupClause)
	mux.HandleFunc("/v1/clause-index/rebuild", rt.rebuildClauseIndex)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type retrieveRequest struct {
	Query         string `json:"query"`
	TopK          int    `json:"top_k"`
	Vertical      string `json:"vertical"`
	ForceInternet bool   `json:"force_internet"`
}

func (rt *Router) retrieve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req retrieveRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	vertical := domain.Vertical(strings.TrimSpace(req.Vertical))
	if vertical != "" && !domain.IsValidVertical(vertical) {
		writeError(w, http.StatusBadRequest, "unknown vertical: "+req.Vertical)
		return
	}

	start := time.Now()
	resp, err := rt.retrieval.Retrieve(r.Context(), req.Query, ports.RetrievalOptions{
		TopK:          req.TopK,
		Vertical:      vertical,
		ForceInternet: req.ForceInternet,
	})
	if err != nil {
		rt.writeDomainError(w, r, "retrieve", err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.ObserveRetrieval(string(resp.Mode), time.Since(start), len(resp.Results))
		if resp.ClauseFastPath {
			rt.metrics.IncClauseFastPath()
		}
		if resp.UsedInternet {
			rt.metrics.IncInternetRouted()
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) lookupClause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	matches, err := rt.clauses.LookupClause(r.Context(), req.Query)
	if err != nil {
		rt.writeDomainError(w, r, "lookup clause", err)
		return
	}
	if matches == nil {
		matches = []domain.ClauseEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (rt *Router) rebuildClauseIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	entries, err := rt.rebuilder.Rebuild(r.Context())
	if err != nil {
		rt.writeDomainError(w, r, "rebuild clause index", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

type createDocumentRequest struct {
	Title       string `json:"title"`
	Vertical    string `json:"vertical"`
	DocType     string `json:"doc_type"`
	SourceLabel string `json:"source_label"`
	Year        int    `json:"year"`
	Text        string `json:"text"`
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.createDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeMethodNotAllowed(w)
	}
}

func (rt *Router) createDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	doc := &domain.Document{
		Title:       req.Title,
		Vertical:    domain.Vertical(strings.TrimSpace(req.Vertical)),
		DocType:     req.DocType,
		SourceLabel: req.SourceLabel,
		Year:        req.Year,
	}

	chunks, err := rt.ingestor.Ingest(r.Context(), doc, req.Text)
	if err != nil {
		rt.writeDomainError(w, r, "ingest document", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"document": doc,
		"chunks":   chunks,
	})
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	vertical := domain.Vertical(strings.TrimSpace(r.URL.Query().Get("vertical")))
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	docs, err := rt.registrar.List(r.Context(), vertical, limit)
	if err != nil {
		rt.writeDomainError(w, r, "list documents", err)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "document id is required")
		return
	}

	doc, err := rt.registrar.GetByID(r.Context(), id)
	if err != nil {
		rt.writeDomainError(w, r, "get document", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) writeDomainError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= 500 {
		rt.logger.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"operation", operation,
			"error", err)
	}
	writeError(w, status, err.Error())
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
