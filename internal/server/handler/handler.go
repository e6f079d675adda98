// Package handler exposes the engine's four public operations over HTTP:
// add document, search, stats, and clear. Input validation happens here, at
// the ingestion boundary; the engine itself stays total on degenerate
// input.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/docfind/docfind/internal/engine"
	"github.com/docfind/docfind/internal/indexer/corpus"
	"github.com/docfind/docfind/internal/searcher/cache"
	pkgerrors "github.com/docfind/docfind/pkg/errors"
	"github.com/docfind/docfind/pkg/logger"
	"github.com/docfind/docfind/pkg/metrics"
)

// SearchResponse is the JSON body returned by the search endpoint.
type SearchResponse struct {
	Query   string                `json:"query"`
	Results []engine.SearchResult `json:"results"`
}

// StatsResponse combines engine stats with query cache counters.
type StatsResponse struct {
	corpus.Stats
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// Handler routes HTTP requests to an engine, with an optional query cache.
type Handler struct {
	engine       *engine.Engine
	cache        *cache.QueryCache
	metrics      *metrics.Metrics
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New creates a Handler. cache and m may be nil.
func New(eng *engine.Engine, queryCache *cache.QueryCache, m *metrics.Metrics, defaultLimit, maxResults int) *Handler {
	return &Handler{
		engine:       eng,
		cache:        queryCache,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "http-handler"),
	}
}

// AddDocument decodes a document from the request body, indexes it, and
// invalidates the query cache.
func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var doc corpus.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.writeError(w, http.StatusBadRequest, "request body must be a JSON document")
		return
	}
	if err := h.engine.AddDocument(doc); err != nil {
		status := pkgerrors.HTTPStatusCode(err)
		if status >= http.StatusInternalServerError {
			log.Error("add document failed", "doc_id", doc.ID, "error", err)
		}
		h.writeError(w, status, err.Error())
		return
	}
	h.invalidateCache(r)

	log.Info("document added", "doc_id", doc.ID)
	h.writeJSON(w, http.StatusCreated, map[string]string{
		"id":     doc.ID,
		"status": "indexed",
	})
}

// Search runs a ranked query. An empty q is valid and yields empty results.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			qerr := pkgerrors.Newf(pkgerrors.ErrInvalidQuery, http.StatusBadRequest,
				"limit must be a positive integer, got %q", limitStr)
			h.writeError(w, pkgerrors.HTTPStatusCode(qerr), qerr.Error())
			return
		}
		if parsed > h.maxResults {
			parsed = h.maxResults
		}
		limit = parsed
	}

	var results []engine.SearchResult
	cacheHit := false
	if h.cache != nil {
		results, cacheHit = h.cache.GetOrCompute(ctx, query, limit, func() []engine.SearchResult {
			return h.searchLimited(query, limit)
		})
	} else {
		results = h.searchLimited(query, limit)
	}

	if h.metrics != nil {
		h.recordSearchMetrics(results, cacheHit, time.Since(start))
	}
	log.Info("search completed",
		"query", query,
		"returned", len(results),
		"cache_hit", cacheHit,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	if results == nil {
		results = []engine.SearchResult{}
	}
	h.writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Results: results,
	})
}

// searchLimited applies a caller limit below the engine's own cap.
func (h *Handler) searchLimited(query string, limit int) []engine.SearchResult {
	results := h.engine.Search(query)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Stats reports corpus stats plus cache counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{Stats: h.engine.Stats()}
	if h.cache != nil {
		resp.CacheHits, resp.CacheMisses = h.cache.Stats()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Clear resets the engine and invalidates the query cache.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.engine.Clear()
	h.invalidateCache(r)
	logger.FromContext(r.Context()).Info("corpus cleared")
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) invalidateCache(r *http.Request) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		// Stale entries expire with the TTL; log and carry on.
		h.logger.Error("cache invalidation failed", "error", err)
	}
}

func (h *Handler) recordSearchMetrics(results []engine.SearchResult, cacheHit bool, elapsed time.Duration) {
	resultType := "hit"
	if len(results) == 0 {
		resultType = "zero_result"
	}
	cacheStatus := "miss"
	if cacheHit {
		cacheStatus = "hit"
		h.metrics.CacheHitsTotal.Inc()
	} else {
		h.metrics.CacheMissesTotal.Inc()
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(elapsed.Seconds())
	h.metrics.SearchResultsCount.Observe(float64(len(results)))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
