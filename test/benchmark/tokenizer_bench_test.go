package benchmark

import (
	"fmt"
	"strings"
	"testing"

	"github.com/docfind/docfind/internal/indexer/tokenizer"
)

var sampleTexts = map[string]string{
	"short": "The quick brown fox jumps over the lazy dog",
	"medium": `Ranked retrieval engines normalise documents into term streams,
        weight each term by its frequency within the document and its rarity
        across the corpus, and score candidates against the query vector by
        cosine similarity. An inverted index narrows the candidate set to
        documents sharing at least one query term before any scoring work
        happens, keeping interactive queries fast on batch-built corpora.`,
	"long": strings.Repeat(`Information retrieval systems combine tokenization,
        stemming, and stop word removal to normalise text into searchable
        terms. The inverted index maps each term to the documents containing
        it, enabling candidate retrieval without scanning the whole corpus.
        TF-IDF weighting rewards terms that are frequent locally but rare
        globally, and cosine similarity ranks documents by directional
        closeness to the query fingerprint. `, 20),
}

func BenchmarkTokenize(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				tokens := tokenizer.Tokenize(text)
				_ = tokens
			}
		})
	}
}

func BenchmarkTokenizeParallel(b *testing.B) {
	text := sampleTexts["medium"]
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			tokens := tokenizer.Tokenize(text)
			_ = tokens
		}
	})
}

func BenchmarkStemming(b *testing.B) {
	words := []string{
		"running", "searching", "indexing", "tokenization",
		"normalization", "efficiently", "processing", "happiness",
		"statement", "countless",
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, w := range words {
			tokens := tokenizer.Tokenize(w)
			_ = tokens
		}
	}
}

func BenchmarkTokenizeVaryingSize(b *testing.B) {
	sizes := []int{10, 100, 500, 1000, 5000}
	baseWord := "ranked retrieval engine indexing corpus "
	for _, size := range sizes {
		text := strings.Repeat(baseWord, size/len(baseWord)+1)[:size]
		b.Run(fmt.Sprintf("bytes_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				tokens := tokenizer.Tokenize(text)
				_ = tokens
			}
		})
	}
}
