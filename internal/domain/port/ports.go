package port

import (
	"context"
	"time"
)

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// EnrichmentClient fetches bonus points from an external alternative-data
// source. The bonus is bounded by the engine; implementations may return any
// non-negative value.
type EnrichmentClient interface {
	FetchBonus(ctx context.Context, applicantID string) (int, error)
}

// ---------------------------------------------------------------------------
// Audit sink port
// ---------------------------------------------------------------------------

// AuditRecord is the redacted trace of one engine invocation. Monetary
// fields are masked before the record leaves the engine.
type AuditRecord struct {
	ID         string         `json:"id"`
	Operation  string         `json:"operation"`
	Timestamp  time.Time      `json:"timestamp"`
	DurationMs int64          `json:"duration_ms"`
	Input      map[string]any `json:"input,omitempty"`
	Output     map[string]any `json:"output,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// AuditSink receives exactly one record per engine invocation.
type AuditSink interface {
	Record(ctx context.Context, rec AuditRecord) error
}

// AuditSinkFunc adapts a plain callback to the AuditSink interface.
type AuditSinkFunc func(ctx context.Context, rec AuditRecord) error

// Record implements AuditSink.
func (f AuditSinkFunc) Record(ctx context.Context, rec AuditRecord) error {
	return f(ctx, rec)
}
