package corpus_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfind/docfind/internal/indexer/corpus"
	pkgerrors "github.com/docfind/docfind/pkg/errors"
)

func TestAddProcessesContentThenTitle(t *testing.T) {
	store := corpus.NewStore()
	processed, err := store.Add(corpus.Document{
		ID:      "1",
		Title:   "Cats",
		Content: "Cats are great pets and cats are fun",
	})
	require.NoError(t, err)

	// Content tokens first, then the title token.
	assert.Equal(t, []string{"cat", "great", "pet", "cat", "fun", "cat"}, processed.Tokens)
	assert.InDelta(t, 3.0/6.0, processed.TermFreq["cat"], 1e-12)
	assert.InDelta(t, 1.0/6.0, processed.TermFreq["pet"], 1e-12)
}

func TestTermFrequenciesReconstructTokenCount(t *testing.T) {
	store := corpus.NewStore()
	processed, err := store.Add(corpus.Document{
		ID:      "1",
		Title:   "Indexing",
		Content: "indexing documents means tokenizing documents and weighting terms",
	})
	require.NoError(t, err)

	total := float64(len(processed.Tokens))
	var sum float64
	for _, freq := range processed.TermFreq {
		sum += freq * total
	}
	assert.Equal(t, len(processed.Tokens), int(math.Round(sum)))
}

func TestAddRejectsDuplicateID(t *testing.T) {
	store := corpus.NewStore()
	_, err := store.Add(corpus.Document{ID: "1", Title: "First", Content: "first body"})
	require.NoError(t, err)

	_, err = store.Add(corpus.Document{ID: "1", Title: "Second", Content: "second body"})
	assert.ErrorIs(t, err, pkgerrors.ErrDocumentExists)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "First", store.Get("1").Title)
}

func TestVocabularyGrowsMonotonically(t *testing.T) {
	store := corpus.NewStore()
	_, err := store.Add(corpus.Document{ID: "1", Title: "Alpha", Content: "apple banana"})
	require.NoError(t, err)
	sizeAfterFirst := store.VocabularySize()

	_, err = store.Add(corpus.Document{ID: "2", Title: "Beta", Content: "apple cherry"})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, store.VocabularySize(), sizeAfterFirst)
	assert.True(t, store.HasTerm("apple"))
	assert.True(t, store.HasTerm("cherry"))
	assert.False(t, store.HasTerm("durian"))
}

func TestDocumentFrequency(t *testing.T) {
	store := corpus.NewStore()
	_, err := store.Add(corpus.Document{ID: "1", Title: "One", Content: "apple banana"})
	require.NoError(t, err)
	_, err = store.Add(corpus.Document{ID: "2", Title: "Two", Content: "apple cherry"})
	require.NoError(t, err)

	assert.Equal(t, 2, store.DocumentFrequency("apple"))
	assert.Equal(t, 1, store.DocumentFrequency("banana"))
	assert.Equal(t, 0, store.DocumentFrequency("durian"))
}

func TestStatsAndClear(t *testing.T) {
	store := corpus.NewStore()
	_, err := store.Add(corpus.Document{ID: "1", Title: "One", Content: "apple banana cherry"})
	require.NoError(t, err)
	_, err = store.Add(corpus.Document{ID: "2", Title: "Two", Content: "apple"})
	require.NoError(t, err)

	stats := store.Stats()
	assert.Equal(t, 2, stats.TotalDocuments)
	// doc 1 has 4 tokens (content + title), doc 2 has 2.
	assert.InDelta(t, 3.0, stats.AvgDocumentLength, 1e-12)
	assert.Equal(t, stats.TotalTerms, store.VocabularySize())

	store.Clear()
	stats = store.Stats()
	assert.Equal(t, corpus.Stats{}, stats)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.IDs())
}

func TestIDsPreserveInsertionOrder(t *testing.T) {
	store := corpus.NewStore()
	for _, id := range []string{"c", "a", "b"} {
		_, err := store.Add(corpus.Document{ID: id, Title: "Doc " + id, Content: "shared body text"})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"c", "a", "b"}, store.IDs())
}
