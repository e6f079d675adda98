// Package corpus holds the processed documents and the global vocabulary.
// A Store owns every ProcessedDocument: documents are tokenised exactly once
// on Add and never mutated afterwards.
package corpus

import (
	"github.com/docfind/docfind/internal/indexer/tokenizer"
	"github.com/docfind/docfind/internal/searcher/weighting"
	pkgerrors "github.com/docfind/docfind/pkg/errors"
)

// Document is a raw document supplied by a collaborator. Identity is ID,
// which must be unique within the corpus.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ProcessedDocument is a Document plus its normalised token stream and
// relative term frequencies.
type ProcessedDocument struct {
	Document
	Tokens   []string
	TermFreq map[string]float64
}

// Stats summarises the corpus state.
type Stats struct {
	TotalDocuments    int     `json:"total_documents"`
	TotalTerms        int     `json:"total_terms"`
	AvgDocumentLength float64 `json:"avg_document_length"`
}

// Store keeps processed documents in insertion order together with the
// corpus-wide vocabulary. It carries no locking; the owning engine
// serialises access.
type Store struct {
	docs        map[string]*ProcessedDocument
	order       []string
	vocabulary  map[string]struct{}
	totalTokens int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		docs:       make(map[string]*ProcessedDocument),
		vocabulary: make(map[string]struct{}),
	}
}

// Add tokenises the document body (content first, then title), computes its
// term frequencies, and merges new terms into the vocabulary. Duplicate ids
// are rejected with ErrDocumentExists.
func (s *Store) Add(doc Document) (*ProcessedDocument, error) {
	if _, exists := s.docs[doc.ID]; exists {
		return nil, pkgerrors.ErrDocumentExists
	}
	tokens := tokenizer.Tokenize(doc.Content + " " + doc.Title)
	processed := &ProcessedDocument{
		Document: doc,
		Tokens:   tokens,
		TermFreq: weighting.TermFrequency(tokens),
	}
	s.docs[doc.ID] = processed
	s.order = append(s.order, doc.ID)
	s.totalTokens += len(tokens)
	for term := range processed.TermFreq {
		s.vocabulary[term] = struct{}{}
	}
	return processed, nil
}

// Get returns the processed document for id, or nil.
func (s *Store) Get(id string) *ProcessedDocument {
	return s.docs[id]
}

// IDs returns document ids in insertion order. The returned slice is shared
// and must not be modified.
func (s *Store) IDs() []string {
	return s.order
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// VocabularySize returns the number of distinct terms seen so far.
func (s *Store) VocabularySize() int {
	return len(s.vocabulary)
}

// HasTerm reports whether term has been seen in any document.
func (s *Store) HasTerm(term string) bool {
	_, ok := s.vocabulary[term]
	return ok
}

// DocumentFrequency returns the number of documents whose term frequencies
// contain term with a positive value.
func (s *Store) DocumentFrequency(term string) int {
	df := 0
	for _, id := range s.order {
		if s.docs[id].TermFreq[term] > 0 {
			df++
		}
	}
	return df
}

// Stats returns document count, vocabulary size, and mean token count.
func (s *Store) Stats() Stats {
	st := Stats{
		TotalDocuments: len(s.docs),
		TotalTerms:     len(s.vocabulary),
	}
	if st.TotalDocuments > 0 {
		st.AvgDocumentLength = float64(s.totalTokens) / float64(st.TotalDocuments)
	}
	return st
}

// Clear resets the store to its initial empty state.
func (s *Store) Clear() {
	s.docs = make(map[string]*ProcessedDocument)
	s.order = nil
	s.vocabulary = make(map[string]struct{})
	s.totalTokens = 0
}
