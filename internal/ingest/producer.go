package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/docfind/docfind/pkg/config"
)

// Producer publishes document events onto the ingest topic. Messages are
// keyed by document id, so repeated sends of the same document stay on one
// partition and arrive in order.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer wires a Producer to the document ingest topic from cfg.
func NewProducer(cfg config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topics.DocumentIngest,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{
		writer: writer,
		logger: slog.Default().With(
			"component", "ingest-producer",
			"topic", cfg.Topics.DocumentIngest,
		),
	}
}

// Publish writes a single document event synchronously.
func (p *Producer) Publish(ctx context.Context, event DocumentEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publishing document event", "doc_id", event.ID, "error", err)
		return fmt.Errorf("publishing document %s: %w", event.ID, err)
	}
	return nil
}

// PublishAll writes a batch of document events in one call.
func (p *Producer) PublishAll(ctx context.Context, events []DocumentEvent) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := encodeEvent(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error("publishing document batch", "count", len(msgs), "error", err)
		return fmt.Errorf("publishing %d documents: %w", len(msgs), err)
	}
	p.logger.Info("document batch published", "count", len(msgs))
	return nil
}

// Close flushes pending writes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

func encodeEvent(event DocumentEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encoding document %s: %w", event.ID, err)
	}
	return kafka.Message{Key: []byte(event.ID), Value: value}, nil
}
