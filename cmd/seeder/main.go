// Command seeder publishes documents onto the ingest topic. It reads a JSON
// array of {id, title, content} objects from a file, or falls back to a
// small built-in sample corpus, and writes one document event per entry.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/docfind/docfind/internal/ingest"
	"github.com/docfind/docfind/pkg/config"
	"github.com/docfind/docfind/pkg/logger"
)

var sampleCorpus = []ingest.DocumentEvent{
	{ID: "go-1", Title: "The Go Programming Language", Content: "Go is a statically typed compiled language designed at Google for building simple reliable and efficient software"},
	{ID: "go-2", Title: "Concurrency in Go", Content: "Goroutines and channels make concurrent programming in Go straightforward compared to threads and locks"},
	{ID: "ir-1", Title: "Inverted Indexes", Content: "An inverted index maps every term to the documents containing it enabling fast candidate retrieval for free text queries"},
	{ID: "ir-2", Title: "TF-IDF Weighting", Content: "Term frequency weighted by inverse document frequency rewards terms that are frequent locally but rare globally"},
	{ID: "ir-3", Title: "Cosine Similarity", Content: "Cosine similarity measures the angle between two vectors and ranks documents by directional closeness to the query"},
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	corpusPath := flag.String("corpus", "", "path to JSON file with documents (defaults to built-in sample)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, "text")

	docs := sampleCorpus
	if *corpusPath != "" {
		data, err := os.ReadFile(*corpusPath)
		if err != nil {
			slog.Error("reading corpus file", "path", *corpusPath, "error", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &docs); err != nil {
			slog.Error("parsing corpus file", "path", *corpusPath, "error", err)
			os.Exit(1)
		}
	}

	producer := ingest.NewProducer(cfg.Kafka)
	defer producer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	for i := range docs {
		docs[i].Timestamp = now
	}
	if err := producer.PublishAll(ctx, docs); err != nil {
		slog.Error("publishing documents", "error", err)
		os.Exit(1)
	}
	slog.Info("documents published",
		"count", len(docs),
		"topic", cfg.Kafka.Topics.DocumentIngest,
	)
}
