package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/credit-engine/internal/application/dto"
	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/port"
	"github.com/bibbank/credit-engine/internal/domain/service"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
	"github.com/bibbank/credit-engine/internal/infrastructure/resilience"
	"github.com/bibbank/credit-engine/internal/observability"
)

// Guard skips wrap the shared sentinel so callers and logs can classify a
// degraded enrichment without parsing messages.
var (
	errEnrichmentRateLimited = fmt.Errorf("%w: rate limited", valueobject.ErrEnrichmentUnavailable)
	errEnrichmentCircuitOpen = fmt.Errorf("%w: circuit open", valueobject.ErrEnrichmentUnavailable)
)

// ScoreApplicantUseCase orchestrates one scoring invocation: policy
// resolution, normalization, guarded external enrichment, and aggregation.
type ScoreApplicantUseCase struct {
	enrichment port.EnrichmentClient
	limiter    *resilience.RateLimiter
	breaker    *resilience.CircuitBreaker
	audit      port.AuditSink
	metrics    *observability.EngineMetrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewScoreApplicantUseCase wires dependencies. The enrichment client may be
// nil; scoring then runs without the external bonus.
func NewScoreApplicantUseCase(
	enrichment port.EnrichmentClient,
	limiter *resilience.RateLimiter,
	breaker *resilience.CircuitBreaker,
	audit port.AuditSink,
	metrics *observability.EngineMetrics,
	logger *slog.Logger,
) *ScoreApplicantUseCase {
	return &ScoreApplicantUseCase{
		enrichment: enrichment,
		limiter:    limiter,
		breaker:    breaker,
		audit:      audit,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Execute scores one applicant. Exactly one audit record is emitted per
// invocation, on both the success and the error path.
func (uc *ScoreApplicantUseCase) Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	start := uc.now().UTC()

	// 1. Resolve and validate the effective policy.
	pol, err := policy.Resolve(req.Options)
	if err != nil {
		uc.recordAudit(ctx, "score_applicant", start, req.Applicant, nil, err)
		return dto.ScoreResponse{}, err
	}

	// 2. Normalize and validate the profile.
	n, err := service.NormalizeApplicant(req.Applicant, pol)
	if err != nil {
		uc.recordAudit(ctx, "score_applicant", start, req.Applicant, nil, err)
		return dto.ScoreResponse{}, err
	}

	// 3. Zero income short-circuits before any factor scorer runs.
	var result model.ScoreResult
	if n.MonthlyIncome.IsZero() {
		result = model.ZeroIncomeResult(start)
	} else {
		bonus, notes := uc.fetchEnrichment(ctx, pol, n.ApplicantID)
		result = service.Aggregate(ctx, n, pol, bonus, notes, start)
	}

	uc.metrics.ScoringRequests.WithLabelValues(result.Tier.String()).Inc()
	uc.metrics.ScoringDuration.Observe(uc.now().UTC().Sub(start).Seconds())

	uc.logger.InfoContext(ctx, "applicant scored",
		"applicant_id", n.ApplicantID,
		"total_score", result.TotalScore,
		"tier", result.Tier.String(),
	)

	uc.recordAudit(ctx, "score_applicant", start, req.Applicant, map[string]any{
		"total_score": result.TotalScore,
		"tier":        result.Tier.String(),
		"disclosures": result.Disclosures,
	}, nil)

	return dto.ScoreResponse{Result: result}, nil
}

// fetchEnrichment runs the external fetch behind the rate limiter, circuit
// breaker, and per-call timeout. Every skip degrades to a zero bonus with an
// explanatory note; enrichment failures never fail the scoring call.
func (uc *ScoreApplicantUseCase) fetchEnrichment(
	ctx context.Context,
	pol policy.ScoringPolicy,
	applicantID string,
) (int, []string) {
	if !pol.FetchExternalData || uc.enrichment == nil {
		return 0, nil
	}

	bonus, err := uc.tryEnrichment(ctx, pol, applicantID)
	if err == nil {
		return bonus, nil
	}

	uc.logger.WarnContext(ctx, "enrichment degraded",
		"applicant_id", applicantID, "error", err)

	var note string
	switch {
	case errors.Is(err, errEnrichmentRateLimited):
		note = "enrichment skipped: rate limited"
	case errors.Is(err, errEnrichmentCircuitOpen):
		note = "enrichment skipped: circuit open"
	default:
		note = "enrichment skipped: provider failure"
	}
	return 0, []string{note}
}

// tryEnrichment performs the guarded fetch. Every failure path returns an
// error wrapping valueobject.ErrEnrichmentUnavailable.
func (uc *ScoreApplicantUseCase) tryEnrichment(
	ctx context.Context,
	pol policy.ScoringPolicy,
	applicantID string,
) (int, error) {
	if !uc.limiter.Allow() {
		uc.metrics.EnrichmentSkips.WithLabelValues("rate_limit").Inc()
		return 0, errEnrichmentRateLimited
	}
	if !uc.breaker.Allow() {
		uc.metrics.EnrichmentSkips.WithLabelValues("circuit_open").Inc()
		return 0, errEnrichmentCircuitOpen
	}

	fetchCtx, cancel := context.WithTimeout(ctx, pol.EnrichmentTimeout)
	defer cancel()

	bonus, err := uc.enrichment.FetchBonus(fetchCtx, applicantID)
	if err != nil {
		uc.breaker.RecordFailure()
		uc.metrics.EnrichmentSkips.WithLabelValues("failure").Inc()
		return 0, fmt.Errorf("%w: provider failure: %v", valueobject.ErrEnrichmentUnavailable, err)
	}

	uc.breaker.RecordSuccess()
	return bonus, nil
}

// recordAudit emits the single audit record for this invocation. Monetary
// inputs are masked; only derived non-monetary facts leave the engine.
func (uc *ScoreApplicantUseCase) recordAudit(
	ctx context.Context,
	operation string,
	start time.Time,
	applicant model.ApplicantProfile,
	output map[string]any,
	opErr error,
) {
	rec := port.AuditRecord{
		ID:         uuid.New().String(),
		Operation:  operation,
		Timestamp:  start,
		DurationMs: uc.now().UTC().Sub(start).Milliseconds(),
		Input:      redactProfile(applicant),
		Output:     output,
	}
	if opErr != nil {
		rec.Error = opErr.Error()
	}

	if err := uc.audit.Record(ctx, rec); err != nil {
		uc.logger.ErrorContext(ctx, "audit record failed",
			"record_id", rec.ID, "error", err)
	}
}

const redactedMask = "[REDACTED]"

// redactProfile produces the audit view of a profile: identifiers and shape
// stay, monetary amounts are masked.
func redactProfile(p model.ApplicantProfile) map[string]any {
	return map[string]any{
		"applicant_id":         p.ApplicantID,
		"currency":             p.Currency,
		"monthly_income":       redactedMask,
		"monthly_expenses":     redactedMask,
		"requested_amount":     redactedMask,
		"collateral_value":     redactedMask,
		"term_months":          p.TermMonths,
		"employment_stability": string(p.EmploymentStability),
		"has_co_applicant":     p.HasCoApplicant,
	}
}
