// Package weighting computes TF, IDF, and TF-IDF term weights. IDF values
// are memoized per corpus state and must be invalidated whenever the corpus
// changes, since document frequencies are corpus-global.
package weighting

import (
	"math"
	"sync"
)

// CorpusStats is the view of the corpus the weighting engine needs.
type CorpusStats interface {
	Len() int
	DocumentFrequency(term string) int
}

// TermFrequency returns the relative frequency of each term in tokens.
// An empty token slice yields an empty map, never NaN.
func TermFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	if len(tokens) == 0 {
		return tf
	}
	total := float64(len(tokens))
	for _, token := range tokens {
		tf[token]++
	}
	for term, count := range tf {
		tf[term] = count / total
	}
	return tf
}

// Engine memoizes inverse document frequencies against a corpus. The cache
// carries its own lock because memoization writes happen on the read path:
// concurrent searches would otherwise race on the map.
type Engine struct {
	corpus   CorpusStats
	mu       sync.RWMutex
	idfCache map[string]float64
}

// NewEngine creates a weighting engine bound to the given corpus view.
func NewEngine(corpus CorpusStats) *Engine {
	return &Engine{
		corpus:   corpus,
		idfCache: make(map[string]float64),
	}
}

// IDF returns ln(totalDocs/documentFrequency) for term, memoized. Terms in
// zero documents get an IDF of 0 so unseen query terms contribute nothing
// instead of producing an infinite weight.
func (e *Engine) IDF(term string) float64 {
	e.mu.RLock()
	idf, ok := e.idfCache[term]
	e.mu.RUnlock()
	if ok {
		return idf
	}
	if df := e.corpus.DocumentFrequency(term); df > 0 {
		idf = math.Log(float64(e.corpus.Len()) / float64(df))
	}
	e.mu.Lock()
	e.idfCache[term] = idf
	e.mu.Unlock()
	return idf
}

// TFIDF multiplies each term frequency by its IDF, returning a sparse
// vector. Terms absent from tf are implicitly zero and omitted.
func (e *Engine) TFIDF(tf map[string]float64) map[string]float64 {
	vec := make(map[string]float64, len(tf))
	for term, freq := range tf {
		vec[term] = freq * e.IDF(term)
	}
	return vec
}

// Invalidate clears the IDF cache. Callers must invoke it after every
// corpus mutation; a stale cache silently skews every subsequent score.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.idfCache = make(map[string]float64)
	e.mu.Unlock()
}

// CachedTerms returns the number of memoized IDF entries.
func (e *Engine) CachedTerms() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.idfCache)
}
