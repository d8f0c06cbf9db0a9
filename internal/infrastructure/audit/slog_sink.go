package audit

import (
	"context"
	"log/slog"

	"github.com/bibbank/credit-engine/internal/domain/port"
)

// SlogSink is the default in-process AuditSink: every record lands on the
// structured logger at info level.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink writing to the given logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

// Record implements port.AuditSink.
func (s *SlogSink) Record(ctx context.Context, rec port.AuditRecord) error {
	s.logger.InfoContext(ctx, "audit",
		"record_id", rec.ID,
		"operation", rec.Operation,
		"duration_ms", rec.DurationMs,
		"input", rec.Input,
		"output", rec.Output,
		"error", rec.Error,
	)
	return nil
}
