package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

func scoreFor(t *testing.T, n model.NormalizedApplicant, pol policy.ScoringPolicy) model.ScoreResult {
	t.Helper()
	return Aggregate(context.Background(), n, pol, 0, nil, fixedNow)
}

func TestDecideLending_ApprovesWithinPolicy(t *testing.T) {
	pol := defaultPolicy(t)
	n := normalize(t, exampleProfile(), pol)
	score := scoreFor(t, n, pol)
	require.Equal(t, valueobject.TierGood, score.Tier)

	decision := DecideLending(score, n, pol)

	assert.Equal(t, valueobject.DecisionApproved, decision.Status)
	assert.True(t, decision.ApprovedAmount.Equal(n.RequestedAmount))
	assert.Less(t, decision.Metrics.DTI, pol.MaxDTI)
	assert.Zero(t, decision.Metrics.LTV)
	assert.Positive(t, decision.Metrics.DSCR)
}

func TestDecideLending_DeniesBelowSecuredFloor(t *testing.T) {
	pol := defaultPolicy(t)
	n := normalize(t, exampleProfile(), pol)

	score := model.ScoreResult{
		TotalScore: 300,
		Tier:       valueobject.TierPoor,
		Timestamp:  fixedNow,
	}
	decision := DecideLending(score, n, pol)

	assert.Equal(t, valueobject.DecisionDenied, decision.Status)
	assert.Contains(t, decision.Reason, "below the secured minimum")
	assert.True(t, decision.ApprovedAmount.IsZero())
}

func TestDecideLending_SecuredCardApprovedAtDepositLimit(t *testing.T) {
	pol := defaultPolicy(t)
	pol.LoanType = valueobject.LoanTypeCreditCard
	pol.IsSecuredCard = true

	profile := exampleProfile()
	profile.CollateralValue = decimal.NewFromInt(1_000)
	profile.CollateralType = valueobject.CollateralCashDeposit
	n := normalize(t, profile, pol)
	score := scoreFor(t, n, pol)
	require.GreaterOrEqual(t, score.TotalScore, pol.MinScoreSecured)

	decision := DecideLending(score, n, pol)

	assert.Equal(t, valueobject.DecisionApproved, decision.Status)
	assert.True(t, decision.ApprovedAmount.Equal(score.RecommendedLimit))
}

func TestDecideLending_CounteroffersAboveRecommendedLimit(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.RequestedAmount = decimal.NewFromInt(20_000)
	n := normalize(t, profile, pol)
	score := scoreFor(t, n, pol)
	require.Equal(t, valueobject.TierGood, score.Tier)

	decision := DecideLending(score, n, pol)

	assert.Equal(t, valueobject.DecisionCounteroffer, decision.Status)
	assert.True(t, decision.ApprovedAmount.Equal(score.RecommendedLimit))
	assert.Contains(t, decision.Reason, "exceeds recommended limit")
}

func TestDecideLending_NonUnitCurrencyRate(t *testing.T) {
	pol := defaultPolicy(t)
	pol.CurrencyRate = 4.0

	profile := exampleProfile()
	profile.MonthlyIncome = decimal.NewFromInt(24_000)
	profile.MonthlyExpenses = decimal.NewFromInt(5_600)
	profile.MonthlyDebtPayments = decimal.NewFromInt(800)
	profile.AverageDailyBalance = decimal.NewFromInt(10_000)
	profile.RequestedAmount = decimal.NewFromInt(20_000)
	n := normalize(t, profile, pol)

	score := scoreFor(t, n, pol)
	require.True(t, score.RecommendedLimit.Equal(decimal.NewFromInt(40_000)),
		"got %s", score.RecommendedLimit)

	decision := DecideLending(score, n, pol)

	// The local-currency limit converts back for the comparison: the
	// 20000 local request is 5000 normalized, under the 10000 tier limit.
	assert.Equal(t, valueobject.DecisionApproved, decision.Status)
	assert.True(t, decision.ApprovedAmount.Equal(n.RequestedAmount))
}

func TestDecideLending_CounteroffersReducedWhenRatiosStrained(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.MonthlyDebtPayments = decimal.NewFromInt(2_500)
	n := normalize(t, profile, pol)

	// Force an unsecured-qualifying score with a DTI beyond policy.
	score := scoreFor(t, n, pol)
	score.TotalScore = pol.MinScoreUnsecured
	score.Tier = valueobject.TierGood
	score.RecommendedLimit = decimal.NewFromInt(10_000)

	decision := DecideLending(score, n, pol)

	require.Greater(t, decision.Metrics.DTI, pol.MaxDTI)
	assert.Equal(t, valueobject.DecisionCounteroffer, decision.Status)
	assert.True(t, decision.ApprovedAmount.Equal(decimal.NewFromInt(8_000)),
		"got %s", decision.ApprovedAmount)
}

func TestDecideLending_SecuredCounterofferBetweenFloors(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.RequestedAmount = decimal.NewFromInt(9_000)
	profile.CollateralValue = decimal.NewFromInt(10_000)
	profile.CollateralType = valueobject.CollateralRealEstate
	n := normalize(t, profile, pol)

	score := model.ScoreResult{
		TotalScore:       500,
		Tier:             valueobject.TierFair,
		RecommendedLimit: decimal.NewFromInt(2_000),
		Timestamp:        fixedNow,
	}
	decision := DecideLending(score, n, pol)

	assert.Equal(t, valueobject.DecisionCounteroffer, decision.Status)
	// Capped at collateral value times the LTV ceiling.
	assert.True(t, decision.ApprovedAmount.Equal(decimal.NewFromInt(8_000)),
		"got %s", decision.ApprovedAmount)
	assert.Contains(t, decision.Reason, "secured product")
}

func TestDecideLending_DeniesBetweenFloorsWithoutCollateral(t *testing.T) {
	pol := defaultPolicy(t)
	n := normalize(t, exampleProfile(), pol)

	score := model.ScoreResult{
		TotalScore:       500,
		Tier:             valueobject.TierFair,
		RecommendedLimit: decimal.NewFromInt(2_000),
		Timestamp:        fixedNow,
	}
	decision := DecideLending(score, n, pol)

	assert.Equal(t, valueobject.DecisionDenied, decision.Status)
	assert.Contains(t, decision.Reason, "no collateral")
}

func TestDecideLending_HighTierRequiresVerifications(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.CollateralValue = decimal.NewFromInt(40_000)
	profile.CollateralType = valueobject.CollateralRealEstate
	n := normalize(t, profile, pol)

	score := model.ScoreResult{
		TotalScore:       800,
		Tier:             valueobject.TierVeryGood,
		RecommendedLimit: decimal.NewFromInt(25_000),
		Timestamp:        fixedNow,
	}
	decision := DecideLending(score, n, pol)

	assert.Contains(t, decision.RequiredVerifications, model.VerifyIncome)
	assert.Contains(t, decision.RequiredVerifications, model.VerifyAddress)
	assert.Contains(t, decision.RequiredVerifications, model.VerifyCollateralAppraise)
}

func TestDecideLending_CoApplicantMarksDecision(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.HasCoApplicant = true
	profile.CoApplicantIncome = decimal.NewFromInt(3_000)
	n := normalize(t, profile, pol)
	score := scoreFor(t, n, pol)

	decision := DecideLending(score, n, pol)

	assert.True(t, decision.CoApplicantRequired)
	assert.Contains(t, decision.Reason, "co-applicant income considered")
}

func TestReviewFallbackDecision_Shape(t *testing.T) {
	decision := model.ReviewFallbackDecision()

	assert.Equal(t, valueobject.DecisionReview, decision.Status)
	assert.True(t, decision.ApprovedAmount.IsZero())
	assert.Contains(t, decision.Reason, "manual review")
}
