// Package index maintains the inverted index mapping each term to the
// documents containing it. The index is fully rebuilt after every corpus
// mutation. That keeps it trivially consistent with the store at the cost
// of O(total terms) per mutation, which is the principal scalability limit
// of this engine; it suits batch-built or interactive corpora, not
// high-volume streaming ingestion.
package index

import "github.com/docfind/docfind/internal/indexer/corpus"

// Inverted maps term -> posting list of distinct document ids in corpus
// insertion order.
type Inverted struct {
	postings map[string][]string
}

// NewInverted returns an empty index.
func NewInverted() *Inverted {
	return &Inverted{
		postings: make(map[string][]string),
	}
}

// Rebuild discards the current postings and re-derives them from the store.
// After Rebuild, a term maps to exactly the ids of documents whose term
// frequencies contain it.
func (idx *Inverted) Rebuild(store *corpus.Store) {
	postings := make(map[string][]string, len(idx.postings))
	for _, id := range store.IDs() {
		doc := store.Get(id)
		for term := range doc.TermFreq {
			postings[term] = append(postings[term], id)
		}
	}
	idx.postings = postings
}

// Postings returns the posting list for term, or nil when the term is not
// indexed. The returned slice is shared and must not be modified.
func (idx *Inverted) Postings(term string) []string {
	return idx.postings[term]
}

// Terms returns the number of indexed terms.
func (idx *Inverted) Terms() int {
	return len(idx.postings)
}

// Reset empties the index.
func (idx *Inverted) Reset() {
	idx.postings = make(map[string][]string)
}
