package ingest

import (
	"context"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/docfind/docfind/pkg/config"
)

// Consumer reads document events from the ingest topic and feeds them to an
// Ingestor. Offsets are committed only after the ingestor accepts or
// deliberately drops a message, so a transient failure is redelivered.
type Consumer struct {
	reader   *kafka.Reader
	ingestor *Ingestor
	logger   *slog.Logger
}

// NewConsumer wires a Consumer to the document ingest topic from cfg.
func NewConsumer(cfg config.KafkaConfig, ing *Ingestor) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.ConsumerGroup,
		Topic:       cfg.Topics.DocumentIngest,
		MinBytes:    1e3,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &Consumer{
		reader:   reader,
		ingestor: ing,
		logger: slog.Default().With(
			"component", "ingest-consumer",
			"topic", cfg.Topics.DocumentIngest,
		),
	}
}

// Start consumes document events until ctx is cancelled, then closes the
// reader.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("ingest consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("ingest consumer stopping", "reason", ctx.Err())
				return c.reader.Close()
			}
			c.logger.Error("fetching document event", "error", err)
			continue
		}
		if err := c.ingestor.Handle(ctx, msg.Key, msg.Value); err != nil {
			c.logger.Error("applying document event",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("committing offset",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err,
			)
		}
	}
}
