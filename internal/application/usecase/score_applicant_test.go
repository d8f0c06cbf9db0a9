package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-engine/internal/application/dto"
	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/port"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
	"github.com/bibbank/credit-engine/internal/infrastructure/resilience"
	"github.com/bibbank/credit-engine/internal/observability"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type fakeEnrichment struct {
	bonus int
	err   error
	calls int
}

func (f *fakeEnrichment) FetchBonus(_ context.Context, _ string) (int, error) {
	f.calls++
	return f.bonus, f.err
}

type auditCapture struct {
	records []port.AuditRecord
}

func (c *auditCapture) sink() port.AuditSink {
	return port.AuditSinkFunc(func(_ context.Context, rec port.AuditRecord) error {
		c.records = append(c.records, rec)
		return nil
	})
}

func testProfile() model.ApplicantProfile {
	return model.ApplicantProfile{
		ApplicantID:         "apl-001",
		Currency:            "USD",
		MonthlyIncome:       decimal.NewFromInt(6_000),
		MonthlyExpenses:     decimal.NewFromInt(1_400),
		MonthlyDebtPayments: decimal.NewFromInt(200),
		AverageDailyBalance: decimal.NewFromInt(2_500),
		RequestedAmount:     decimal.NewFromInt(5_000),
		TermMonths:          36,
		UtilityPaymentRate:  0.83,
		RentPaymentRate:     1.0,
	}
}

func newTestScorer(enrichment port.EnrichmentClient, capture *auditCapture) *ScoreApplicantUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := NewScoreApplicantUseCase(
		enrichment,
		resilience.NewRateLimiter(10, time.Minute),
		resilience.NewCircuitBreaker(5, 30*time.Second, 5*time.Second),
		capture.sink(),
		observability.NewEngineMetrics(),
		logger,
	)
	uc.now = func() time.Time { return testNow }
	return uc
}

func boolPtr(b bool) *bool { return &b }

func TestScoreApplicant_ReferenceFlow(t *testing.T) {
	capture := &auditCapture{}
	uc := newTestScorer(&fakeEnrichment{}, capture)

	resp, err := uc.Execute(context.Background(), dto.ScoreRequest{Applicant: testProfile()})
	require.NoError(t, err)

	assert.Equal(t, 712, resp.Result.TotalScore)
	assert.Equal(t, valueobject.TierGood, resp.Result.Tier)
	assert.Contains(t, resp.Result.Notes, "macro adjustment factor 1.00")

	require.Len(t, capture.records, 1)
	rec := capture.records[0]
	assert.Equal(t, "score_applicant", rec.Operation)
	assert.Equal(t, "apl-001", rec.Input["applicant_id"])
	assert.Equal(t, redactedMask, rec.Input["monthly_income"])
	assert.Equal(t, redactedMask, rec.Input["requested_amount"])
	assert.Empty(t, rec.Error)
}

func TestScoreApplicant_IsDeterministicWithoutEnrichment(t *testing.T) {
	capture := &auditCapture{}
	uc := newTestScorer(&fakeEnrichment{bonus: 20}, capture)

	req := dto.ScoreRequest{Applicant: testProfile()}
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// FetchExternalData defaults off, so the client is never touched.
	assert.Zero(t, uc.enrichment.(*fakeEnrichment).calls)
}

func TestScoreApplicant_ZeroIncomeShortCircuits(t *testing.T) {
	capture := &auditCapture{}
	client := &fakeEnrichment{bonus: 20}
	uc := newTestScorer(client, capture)

	profile := testProfile()
	profile.MonthlyIncome = decimal.Zero
	req := dto.ScoreRequest{
		Applicant: profile,
		Options:   policy.Overrides{FetchExternalData: boolPtr(true)},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Result.TotalScore)
	assert.Equal(t, valueobject.TierPoor, resp.Result.Tier)
	assert.True(t, resp.Result.HasDisclosure(model.DisclosureZeroIncome))
	assert.Zero(t, client.calls, "no scorer or enrichment runs on zero income")
	assert.Len(t, capture.records, 1)
}

func TestScoreApplicant_EnrichmentBonusApplied(t *testing.T) {
	capture := &auditCapture{}
	client := &fakeEnrichment{bonus: 20}
	uc := newTestScorer(client, capture)

	req := dto.ScoreRequest{
		Applicant: testProfile(),
		Options:   policy.Overrides{FetchExternalData: boolPtr(true)},
	}
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 20, resp.Result.Breakdown.External)
	assert.Equal(t, 732, resp.Result.TotalScore)
}

func TestScoreApplicant_RateLimitedEnrichmentDegrades(t *testing.T) {
	capture := &auditCapture{}
	client := &fakeEnrichment{bonus: 20}
	uc := newTestScorer(client, capture)
	uc.limiter = resilience.NewRateLimiter(1, time.Minute)

	req := dto.ScoreRequest{
		Applicant: testProfile(),
		Options:   policy.Overrides{FetchExternalData: boolPtr(true)},
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 20, first.Result.Breakdown.External)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls, "the denied call must not reach the client")
	assert.Equal(t, 0, second.Result.Breakdown.External)
	assert.Contains(t, second.Result.Notes, "enrichment skipped: rate limited")
}

func TestScoreApplicant_OpenCircuitSkipsClient(t *testing.T) {
	capture := &auditCapture{}
	client := &fakeEnrichment{err: errors.New("provider down")}
	uc := newTestScorer(client, capture)
	uc.breaker = resilience.NewCircuitBreaker(1, 30*time.Second, 5*time.Second)

	req := dto.ScoreRequest{
		Applicant: testProfile(),
		Options:   policy.Overrides{FetchExternalData: boolPtr(true)},
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, first.Result.Notes, "enrichment skipped: provider failure")

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls, "the open breaker must not probe immediately")
	assert.Contains(t, second.Result.Notes, "enrichment skipped: circuit open")
	assert.Equal(t, 0, second.Result.Breakdown.External)
}

func TestScoreApplicant_EnrichmentSkipsWrapSentinel(t *testing.T) {
	assert.ErrorIs(t, errEnrichmentRateLimited, valueobject.ErrEnrichmentUnavailable)
	assert.ErrorIs(t, errEnrichmentCircuitOpen, valueobject.ErrEnrichmentUnavailable)

	capture := &auditCapture{}
	client := &fakeEnrichment{err: errors.New("provider down")}
	uc := newTestScorer(client, capture)

	pol, err := policy.Resolve(policy.Overrides{FetchExternalData: boolPtr(true)})
	require.NoError(t, err)

	_, tryErr := uc.tryEnrichment(context.Background(), pol, "apl-001")
	assert.ErrorIs(t, tryErr, valueobject.ErrEnrichmentUnavailable)
}

func TestScoreApplicant_ValidationErrorIsAudited(t *testing.T) {
	capture := &auditCapture{}
	uc := newTestScorer(&fakeEnrichment{}, capture)

	profile := testProfile()
	profile.MonthlyIncome = decimal.NewFromInt(-100)

	_, err := uc.Execute(context.Background(), dto.ScoreRequest{Applicant: profile})
	require.Error(t, err)
	assert.True(t, valueobject.IsValidationError(err))

	require.Len(t, capture.records, 1)
	assert.NotEmpty(t, capture.records[0].Error)
}

func TestScoreApplicant_InvalidOptionsFailFast(t *testing.T) {
	capture := &auditCapture{}
	uc := newTestScorer(&fakeEnrichment{}, capture)

	bad := policy.Thresholds{Fair: 700, Good: 600, VeryGood: 750, Excellent: 850}
	_, err := uc.Execute(context.Background(), dto.ScoreRequest{
		Applicant: testProfile(),
		Options:   policy.Overrides{Thresholds: &bad},
	})

	require.Error(t, err)
	require.Len(t, capture.records, 1)
	assert.NotEmpty(t, capture.records[0].Error)
}
