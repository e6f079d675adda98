package weighting_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfind/docfind/internal/indexer/corpus"
	"github.com/docfind/docfind/internal/searcher/weighting"
)

func TestTermFrequencyEmptyTokens(t *testing.T) {
	tf := weighting.TermFrequency(nil)
	assert.Empty(t, tf)

	tf = weighting.TermFrequency([]string{})
	assert.Empty(t, tf)
}

func TestTermFrequencyRelativeCounts(t *testing.T) {
	tf := weighting.TermFrequency([]string{"cat", "dog", "cat", "cat"})
	assert.InDelta(t, 0.75, tf["cat"], 1e-12)
	assert.InDelta(t, 0.25, tf["dog"], 1e-12)
	assert.Len(t, tf, 2)
}

func seedStore(t *testing.T) *corpus.Store {
	t.Helper()
	store := corpus.NewStore()
	docs := []corpus.Document{
		{ID: "1", Title: "Fruit", Content: "apple banana"},
		{ID: "2", Title: "Fruit", Content: "apple cherry"},
	}
	for _, doc := range docs {
		_, err := store.Add(doc)
		require.NoError(t, err)
	}
	return store
}

func TestIDFValues(t *testing.T) {
	store := seedStore(t)
	eng := weighting.NewEngine(store)

	// "fruit" appears in every document: ln(2/2) = 0.
	assert.Zero(t, eng.IDF("fruit"))
	// "banana" appears in one of two documents: ln(2) > 0.
	assert.InDelta(t, math.Log(2), eng.IDF("banana"), 1e-12)
	// Unseen terms weigh nothing instead of exploding the score.
	assert.Zero(t, eng.IDF("durian"))
}

func TestIDFMemoizationAndInvalidate(t *testing.T) {
	store := seedStore(t)
	eng := weighting.NewEngine(store)

	before := eng.IDF("banana")
	eng.IDF("apple")
	eng.IDF("durian")
	assert.Equal(t, 3, eng.CachedTerms())

	// A third document containing "banana" halves its rarity; the stale
	// cache keeps answering until invalidated.
	_, err := store.Add(corpus.Document{ID: "3", Title: "More", Content: "banana banana"})
	require.NoError(t, err)
	assert.Equal(t, before, eng.IDF("banana"))

	eng.Invalidate()
	assert.Zero(t, eng.CachedTerms())
	after := eng.IDF("banana")
	assert.InDelta(t, math.Log(3.0/2.0), after, 1e-12)
	assert.Less(t, after, before)
}

func TestTFIDFSparse(t *testing.T) {
	store := seedStore(t)
	eng := weighting.NewEngine(store)

	tf := weighting.TermFrequency([]string{"apple", "banana"})
	vec := eng.TFIDF(tf)

	assert.Len(t, vec, 2)
	// "apple" is in both docs: tf * ln(1) = 0 weight, but still present.
	assert.Zero(t, vec["apple"])
	assert.InDelta(t, 0.5*math.Log(2), vec["banana"], 1e-12)
	_, hasCherry := vec["cherry"]
	assert.False(t, hasCherry)
}
