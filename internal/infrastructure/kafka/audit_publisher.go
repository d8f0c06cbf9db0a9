package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/bibbank/credit-engine/internal/domain/port"
)

// ---------------------------------------------------------------------------
// Kafka audit publisher – out-of-process AuditSink implementation
// ---------------------------------------------------------------------------

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string
	Topic   string
}

// AuditPublisher implements port.AuditSink by writing audit records to a
// Kafka topic, keyed by record ID.
type AuditPublisher struct {
	mu     sync.Mutex
	writer *kafkago.Writer
	topic  string
	logger *slog.Logger
}

// NewAuditPublisher creates a publisher targeting the given brokers and topic.
func NewAuditPublisher(cfg Config, logger *slog.Logger) *AuditPublisher {
	return &AuditPublisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireAll,
		},
		topic:  cfg.Topic,
		logger: logger,
	}
}

// Record serialises and sends one audit record.
func (p *AuditPublisher) Record(ctx context.Context, rec port.AuditRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record %s: %w", rec.ID, err)
	}

	p.logger.DebugContext(ctx, "publishing audit record",
		"record_id", rec.ID,
		"operation", rec.Operation,
		"topic", p.topic,
		"payload_size", len(payload),
	)

	msg := kafkago.Message{
		Key:   []byte(rec.ID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "operation", Value: []byte(rec.Operation)},
		},
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish audit record to topic %s: %w", p.topic, err)
	}
	return nil
}

// Close closes the underlying writer.
func (p *AuditPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer.Close()
}
