// Package ingest consumes document events from Kafka and feeds them into
// the engine. It is one of the engine's external collaborators: any source
// that can produce (id, title, content) triples onto the ingest topic gets
// its documents indexed without touching the HTTP surface.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/docfind/docfind/internal/engine"
	"github.com/docfind/docfind/internal/indexer/corpus"
	"github.com/docfind/docfind/internal/searcher/cache"
	pkgerrors "github.com/docfind/docfind/pkg/errors"
)

// DocumentEvent is the JSON payload carried on the document ingest topic.
type DocumentEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Ingestor applies consumed document events to an engine, invalidating the
// query cache after each successful add.
type Ingestor struct {
	engine *engine.Engine
	cache  *cache.QueryCache
	logger *slog.Logger
}

// New creates an Ingestor. queryCache may be nil.
func New(eng *engine.Engine, queryCache *cache.QueryCache) *Ingestor {
	return &Ingestor{
		engine: eng,
		cache:  queryCache,
		logger: slog.Default().With("component", "ingest"),
	}
}

// Handle applies one consumed document event. Malformed payloads and
// duplicate ids are logged and dropped rather than retried: redelivery
// cannot fix either.
func (i *Ingestor) Handle(ctx context.Context, key []byte, value []byte) error {
	event, err := decodeEvent(value)
	if err != nil {
		i.logger.Error("dropping malformed document event", "key", string(key), "error", err)
		return nil
	}
	err = i.engine.AddDocument(corpus.Document{
		ID:      event.ID,
		Title:   event.Title,
		Content: event.Content,
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrDocumentExists) || errors.Is(err, pkgerrors.ErrInvalidDocument) {
			i.logger.Warn("dropping rejected document event",
				"doc_id", event.ID,
				"error", err,
			)
			return nil
		}
		return err
	}
	if i.cache != nil {
		if cerr := i.cache.Invalidate(ctx); cerr != nil {
			i.logger.Error("cache invalidation failed after ingest", "error", cerr)
		}
	}
	i.logger.Debug("document ingested", "doc_id", event.ID)
	return nil
}

func decodeEvent(value []byte) (DocumentEvent, error) {
	var event DocumentEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return DocumentEvent{}, fmt.Errorf("decoding document event: %w", err)
	}
	return event, nil
}
