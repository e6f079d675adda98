package benchmark

import (
	"fmt"
	"testing"

	"github.com/docfind/docfind/internal/engine"
	"github.com/docfind/docfind/internal/indexer/corpus"
)

var benchTopics = []string{
	"distributed systems consensus replication",
	"machine learning gradient descent optimization",
	"database transactions isolation levels",
	"network protocols congestion control",
	"compiler optimization register allocation",
}

func seedEngine(b *testing.B, docCount int) *engine.Engine {
	b.Helper()
	eng := engine.New()
	for i := 0; i < docCount; i++ {
		topic := benchTopics[i%len(benchTopics)]
		err := eng.AddDocument(corpus.Document{
			ID:      fmt.Sprintf("doc-%d", i),
			Title:   fmt.Sprintf("Article %d", i),
			Content: fmt.Sprintf("%s with additional filler text about topic number %d", topic, i),
		})
		if err != nil {
			b.Fatalf("seeding document %d: %v", i, err)
		}
	}
	return eng
}

func BenchmarkAddDocument(b *testing.B) {
	// Each add rebuilds the full inverted index, so cost grows with
	// corpus size; this benchmark surfaces that deliberately.
	eng := engine.New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = eng.AddDocument(corpus.Document{
			ID:      fmt.Sprintf("doc-%d", i),
			Title:   "Benchmark Document",
			Content: benchTopics[i%len(benchTopics)],
		})
	}
}

func BenchmarkSearch(b *testing.B) {
	for _, docCount := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("docs_%d", docCount), func(b *testing.B) {
			eng := seedEngine(b, docCount)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				results := eng.Search("consensus replication protocols")
				_ = results
			}
		})
	}
}

func BenchmarkSearchParallel(b *testing.B) {
	eng := seedEngine(b, 500)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			results := eng.Search("gradient descent")
			_ = results
		}
	})
}
