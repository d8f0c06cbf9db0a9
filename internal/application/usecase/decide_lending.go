package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/credit-engine/internal/application/dto"
	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/port"
	"github.com/bibbank/credit-engine/internal/domain/service"
	"github.com/bibbank/credit-engine/internal/observability"
)

// DecideLendingUseCase runs the full pipeline: score, lending decision, and
// offer generation.
type DecideLendingUseCase struct {
	scorer  *ScoreApplicantUseCase
	audit   port.AuditSink
	metrics *observability.EngineMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewDecideLendingUseCase wires dependencies.
func NewDecideLendingUseCase(
	scorer *ScoreApplicantUseCase,
	audit port.AuditSink,
	metrics *observability.EngineMetrics,
	logger *slog.Logger,
) *DecideLendingUseCase {
	return &DecideLendingUseCase{
		scorer:  scorer,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Execute scores the applicant and derives the decision and offers. A valid
// request always yields a structured decision: if derivation fails
// unexpectedly the applicant is routed to manual review instead of an error.
func (uc *DecideLendingUseCase) Execute(ctx context.Context, req dto.ScoreRequest) (dto.EvaluationResponse, error) {
	start := uc.now().UTC()

	scoreResp, err := uc.scorer.Execute(ctx, req)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	// Policy resolution and normalization already succeeded inside the
	// scorer; both are pure, so re-running them yields identical values.
	pol, err := policy.Resolve(req.Options)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}
	n, err := service.NormalizeApplicant(req.Applicant, pol)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	decision, offers := uc.derive(scoreResp.Result, n, pol, start)

	uc.metrics.Decisions.WithLabelValues(decision.Status.String()).Inc()
	uc.metrics.OffersGenerated.Add(float64(len(offers)))

	uc.logger.InfoContext(ctx, "lending decision derived",
		"applicant_id", n.ApplicantID,
		"status", decision.Status.String(),
		"offers", len(offers),
	)

	uc.recordAudit(ctx, start, n.ApplicantID, decision, len(offers))

	return dto.EvaluationResponse{
		Result:   scoreResp.Result,
		Decision: decision,
		Offers:   offers,
	}, nil
}

// derive runs the decision engine and offer generator behind a recover
// barrier. A panic downgrades the outcome to the manual-review fallback.
func (uc *DecideLendingUseCase) derive(
	score model.ScoreResult,
	n model.NormalizedApplicant,
	pol policy.ScoringPolicy,
	now time.Time,
) (decision model.LendingDecision, offers []model.LoanOffer) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("decision derivation panicked; routing to manual review",
				"applicant_id", n.ApplicantID, "panic", r)
			decision = model.ReviewFallbackDecision()
			offers = nil
		}
	}()

	decision = service.DecideLending(score, n, pol)
	offers = service.GenerateOffers(decision, score, n, pol, now)
	return decision, offers
}

func (uc *DecideLendingUseCase) recordAudit(
	ctx context.Context,
	start time.Time,
	applicantID string,
	decision model.LendingDecision,
	offerCount int,
) {
	rec := port.AuditRecord{
		ID:         uuid.New().String(),
		Operation:  "decide_lending",
		Timestamp:  start,
		DurationMs: uc.now().UTC().Sub(start).Milliseconds(),
		Input:      map[string]any{"applicant_id": applicantID},
		Output: map[string]any{
			"status":          decision.Status.String(),
			"reason":          decision.Reason,
			"approved_amount": redactedMask,
			"offer_count":     offerCount,
		},
	}

	if err := uc.audit.Record(ctx, rec); err != nil {
		uc.logger.ErrorContext(ctx, "audit record failed",
			"record_id", rec.ID, "error", err)
	}
}
