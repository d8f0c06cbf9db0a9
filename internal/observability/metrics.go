package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineMetrics holds the Prometheus instruments for the scoring engine.
type EngineMetrics struct {
	ScoringRequests  *prometheus.CounterVec
	Decisions        *prometheus.CounterVec
	EnrichmentSkips  *prometheus.CounterVec
	ScoringDuration  prometheus.Histogram
	OffersGenerated  prometheus.Counter
	registry         *prometheus.Registry
}

// NewEngineMetrics registers the engine instruments on a fresh registry.
func NewEngineMetrics() *EngineMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &EngineMetrics{
		ScoringRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_engine_scoring_requests_total",
			Help: "Scoring invocations by outcome tier.",
		}, []string{"tier"}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_engine_decisions_total",
			Help: "Lending decisions by status.",
		}, []string{"status"}),
		EnrichmentSkips: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_engine_enrichment_skips_total",
			Help: "External enrichment attempts skipped, by guard.",
		}, []string{"guard"}),
		ScoringDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "credit_engine_scoring_duration_seconds",
			Help:    "Wall time of one scoring invocation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		OffersGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "credit_engine_offers_generated_total",
			Help: "Loan offers produced across all decisions.",
		}),
		registry: reg,
	}
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
