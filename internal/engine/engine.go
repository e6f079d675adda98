// Package engine exposes the search engine facade: add documents, run
// ranked queries, report stats, and reset. An Engine owns the corpus store,
// the inverted index, and the weighting engine as one explicit instance, so
// callers never share hidden package-level state.
package engine

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/docfind/docfind/internal/indexer/corpus"
	"github.com/docfind/docfind/internal/indexer/index"
	"github.com/docfind/docfind/internal/indexer/tokenizer"
	"github.com/docfind/docfind/internal/searcher/ranker"
	"github.com/docfind/docfind/internal/searcher/weighting"
	pkgerrors "github.com/docfind/docfind/pkg/errors"
	"github.com/docfind/docfind/pkg/metrics"
)

// DefaultLimit is the maximum number of results a search returns unless the
// engine is configured with a different limit.
const DefaultLimit = 5

// SearchResult is a matching document with its cosine similarity score.
type SearchResult struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Stats mirrors corpus.Stats for the public surface.
type Stats = corpus.Stats

// Option configures an Engine.
type Option func(*Engine)

// WithLimit overrides the default result limit.
func WithLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

// WithMetrics attaches Prometheus collectors to the engine.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine orchestrates tokenisation, storage, indexing, weighting, and
// ranking behind four operations: AddDocument, Search, Stats, Clear.
//
// The components underneath carry no synchronisation of their own; every
// operation goes through the engine's RWMutex so that a reader can never
// observe the inverted index mid-rebuild with a stale IDF cache.
type Engine struct {
	mu        sync.RWMutex
	store     *corpus.Store
	index     *index.Inverted
	weighting *weighting.Engine
	limit     int
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New returns an empty engine.
func New(opts ...Option) *Engine {
	store := corpus.NewStore()
	e := &Engine{
		store:     store,
		index:     index.NewInverted(),
		weighting: weighting.NewEngine(store),
		limit:     DefaultLimit,
		logger:    slog.Default().With("component", "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddDocument validates, tokenises, and indexes doc. The IDF cache is
// invalidated and the inverted index fully rebuilt before the call returns,
// so a subsequent Search always scores against fresh global frequencies.
// Re-adding an existing id fails with ErrDocumentExists.
func (e *Engine) AddDocument(doc corpus.Document) error {
	if err := validateDocument(doc); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	processed, err := e.store.Add(doc)
	if err != nil {
		return err
	}
	e.weighting.Invalidate()
	e.index.Rebuild(e.store)

	e.logger.Debug("document indexed",
		"doc_id", doc.ID,
		"token_count", len(processed.Tokens),
		"distinct_terms", len(processed.TermFreq),
		"vocabulary", e.store.VocabularySize(),
	)
	if e.metrics != nil {
		e.metrics.DocsIndexedTotal.Inc()
		e.metrics.IndexRebuildsTotal.Inc()
		e.metrics.CorpusDocuments.Set(float64(e.store.Len()))
		e.metrics.CorpusTerms.Set(float64(e.store.VocabularySize()))
	}
	return nil
}

// Search returns up to the engine's result limit of documents ranked by
// descending cosine similarity to query. Candidates are gathered from the
// inverted index as the union of postings for the query's distinct terms;
// a document sharing no surface term with the query cannot have a nonzero
// TF-IDF cosine, so skipping it is exact, not approximate. An empty or
// unmatched query yields an empty result, never an error.
func (e *Engine) Search(query string) []SearchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.store.Len() == 0 {
		return nil
	}
	tokens := tokenizer.Tokenize(query)
	if len(tokens) == 0 {
		return nil
	}
	queryVec := e.weighting.TFIDF(weighting.TermFrequency(tokens))

	candidates := e.gatherCandidates(tokens)
	scored := make([]ranker.ScoredDoc, 0, len(candidates))
	for _, id := range candidates {
		doc := e.store.Get(id)
		// Document vectors are recomputed per query: IDF shifts with
		// every corpus mutation, so cached vectors would go stale.
		docVec := e.weighting.TFIDF(doc.TermFreq)
		if score := ranker.CosineSimilarity(queryVec, docVec); score > 0 {
			scored = append(scored, ranker.ScoredDoc{DocID: id, Score: score})
		}
	}
	ranked := ranker.Rank(scored, e.limit)

	results := make([]SearchResult, len(ranked))
	for i, sd := range ranked {
		doc := e.store.Get(sd.DocID)
		results[i] = SearchResult{
			ID:      doc.ID,
			Title:   doc.Title,
			Content: doc.Content,
			Score:   sd.Score,
		}
	}
	e.logger.Debug("search executed",
		"query", query,
		"terms", len(tokens),
		"candidates", len(candidates),
		"results", len(results),
	)
	return results
}

// gatherCandidates unions the posting lists of the distinct query tokens,
// preserving first-seen order so that ranking tie-breaks stay deterministic.
func (e *Engine) gatherCandidates(tokens []string) []string {
	seen := make(map[string]struct{})
	var candidates []string
	for _, term := range tokens {
		for _, id := range e.index.Postings(term) {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, id)
		}
	}
	return candidates
}

// Stats reports document count, vocabulary size, and mean document length.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Stats()
}

// Clear resets the engine to its initial empty state.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Clear()
	e.index.Reset()
	e.weighting.Invalidate()

	e.logger.Info("engine cleared")
	if e.metrics != nil {
		e.metrics.CorpusDocuments.Set(0)
		e.metrics.CorpusTerms.Set(0)
	}
}

// Len returns the number of indexed documents.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Len()
}

func validateDocument(doc corpus.Document) error {
	var missing []string
	if strings.TrimSpace(doc.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(doc.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(doc.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return pkgerrors.Newf(pkgerrors.ErrInvalidDocument, http.StatusBadRequest,
			"missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
