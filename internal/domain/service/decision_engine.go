package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Decision engine – single-pass approve/deny/counteroffer derivation
// ---------------------------------------------------------------------------

// DecideLending derives the lending decision from a score result, the
// normalized applicant, and the policy. It is a single pass: the status is
// decided once and never revisited within a call.
func DecideLending(
	score model.ScoreResult,
	n model.NormalizedApplicant,
	p policy.ScoringPolicy,
) model.LendingDecision {
	// Below the secured floor nothing can be offered.
	if score.TotalScore < p.MinScoreSecured {
		return annotate(model.LendingDecision{
			Status: valueobject.DecisionDenied,
			Reason: fmt.Sprintf("score %d is %d points below the secured minimum of %d",
				score.TotalScore, p.MinScoreSecured-score.TotalScore, p.MinScoreSecured),
			ApprovedAmount: decimal.Zero,
			Metrics:        affordability(score, n, p),
		}, score, n)
	}

	metrics := affordability(score, n, p)

	// The score reports the limit in the input currency; decision math runs
	// in the reference currency alongside the normalized amounts.
	limit := referenceLimit(score, n)

	// Secured card: the deposit is the limit, always approvable.
	if p.IsSecuredCard {
		return annotate(model.LendingDecision{
			Status:         valueobject.DecisionApproved,
			Reason:         "secured card approved at deposit-backed limit",
			ApprovedAmount: limit,
			Metrics:        metrics,
		}, score, n)
	}

	withinRatios := metrics.DTI <= p.MaxDTI && metrics.LTV <= p.MaxLTV

	switch {
	case score.TotalScore >= p.MinScoreUnsecured && withinRatios:
		if n.RequestedAmount.LessThanOrEqual(limit) {
			return annotate(model.LendingDecision{
				Status:         valueobject.DecisionApproved,
				Reason:         "score and affordability within policy",
				ApprovedAmount: n.RequestedAmount,
				Metrics:        metrics,
			}, score, n)
		}
		return annotate(model.LendingDecision{
			Status: valueobject.DecisionCounteroffer,
			Reason: fmt.Sprintf("requested amount exceeds recommended limit of %s",
				limit.StringFixed(2)),
			ApprovedAmount: limit,
			Metrics:        metrics,
		}, score, n)

	case score.TotalScore >= p.MinScoreUnsecured:
		// Strong score, strained ratios: offer a reduced amount.
		reduced := limit.Mul(decimal.NewFromFloat(0.8)).Round(2)
		return annotate(model.LendingDecision{
			Status: valueobject.DecisionCounteroffer,
			Reason: fmt.Sprintf("affordability ratios exceed policy (DTI %.2f, LTV %.2f); reduced amount offered",
				metrics.DTI, metrics.LTV),
			ApprovedAmount: reduced,
			Metrics:        metrics,
		}, score, n)

	case n.HasCollateral():
		// Between the secured and unsecured floors: suggest a secured product.
		maxSecured := n.CollateralValue.Mul(decimal.NewFromFloat(p.MaxLTV)).Round(2)
		amount := n.RequestedAmount
		if amount.GreaterThan(maxSecured) {
			amount = maxSecured
		}
		return annotate(model.LendingDecision{
			Status: valueobject.DecisionCounteroffer,
			Reason: fmt.Sprintf("score %d qualifies for a secured product only", score.TotalScore),
			ApprovedAmount: amount,
			Metrics:        metrics,
		}, score, n)

	default:
		return annotate(model.LendingDecision{
			Status: valueobject.DecisionDenied,
			Reason: fmt.Sprintf("score %d is below the unsecured minimum of %d and no collateral was pledged",
				score.TotalScore, p.MinScoreUnsecured),
			ApprovedAmount: decimal.Zero,
			Metrics:        metrics,
		}, score, n)
	}
}

// referenceLimit converts the score's input-currency recommended limit back
// into the reference currency.
func referenceLimit(score model.ScoreResult, n model.NormalizedApplicant) decimal.Decimal {
	if n.CurrencyRate == 1 {
		return score.RecommendedLimit
	}
	return score.RecommendedLimit.Div(decimal.NewFromFloat(n.CurrencyRate)).Round(2)
}

// affordability computes the DTI/LTV/DSCR triple. The trial installment is
// priced at the achieved tier's unsecured rate over the requested term.
func affordability(
	score model.ScoreResult,
	n model.NormalizedApplicant,
	p policy.ScoringPolicy,
) model.DecisionMetrics {
	trialRate := p.Rates.Unsecured.ForTier(score.Tier)
	trial := model.MonthlyPayment(n.RequestedAmount, trialRate, n.TermMonths)

	totalService := n.MonthlyDebtPayments.Add(trial)

	var m model.DecisionMetrics
	if n.MonthlyIncome.GreaterThan(decimal.Zero) {
		m.DTI = totalService.Div(n.MonthlyIncome).InexactFloat64()
	}
	if n.HasCollateral() {
		m.LTV = n.RequestedAmount.Div(n.CollateralValue).InexactFloat64()
	}
	if totalService.GreaterThan(decimal.Zero) {
		m.DSCR = n.MonthlyIncome.Sub(n.MonthlyExpenses).Div(totalService).InexactFloat64()
	}
	return m
}

// annotate attaches verification flags and the co-applicant marker.
func annotate(d model.LendingDecision, score model.ScoreResult, n model.NormalizedApplicant) model.LendingDecision {
	if score.Tier.AtLeast(valueobject.TierVeryGood) {
		d.RequiredVerifications = append(d.RequiredVerifications, model.VerifyIncome, model.VerifyAddress)
		if n.HasCollateral() {
			d.RequiredVerifications = append(d.RequiredVerifications, model.VerifyCollateralAppraise)
		}
	}
	if n.HasCoApplicant {
		d.CoApplicantRequired = true
		d.Reason += "; co-applicant income considered"
	}
	return d
}
