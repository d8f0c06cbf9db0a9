package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Capacity scorer – can the applicant service the debt?
// ---------------------------------------------------------------------------

// ScoreCapacity evaluates repayment capacity: debt-service ratio, employment
// and industry stability, disposable income, average daily balance, and
// utility/rent payment bonuses. The debt-service and balance thresholds are
// scaled by the macro-adjustment factor. The result is clamped to the
// capacity weight.
func ScoreCapacity(n model.NormalizedApplicant, p policy.ScoringPolicy) int {
	f := p.MacroFactor()
	score := 0

	// Debt-service ratio bands, thresholds widened or tightened by the
	// macro factor.
	dsr := n.DebtServiceRatio()
	switch {
	case dsr <= 0.20*f:
		score += 200
	case dsr <= 0.28*f:
		score += 160
	case dsr <= 0.36*f:
		score += 120
	case dsr <= 0.43*f:
		score += 70
	default:
		score += 20
	}

	switch n.EmploymentStability {
	case valueobject.EmploymentStable:
		score += 80
	case valueobject.EmploymentModerate:
		score += 50
	default:
		score += 15
	}

	switch n.IndustryRisk {
	case valueobject.IndustryRiskLow:
		score += 40
	case valueobject.IndustryRiskMedium:
		score += 25
	default:
		score += 10
	}

	switch dir := n.DisposableIncomeRatio(); {
	case dir >= 0.40:
		score += 60
	case dir >= 0.25:
		score += 45
	case dir >= 0.15:
		score += 30
	case dir >= 0.05:
		score += 15
	}

	// Average daily balance bands, also macro-scaled.
	balance := n.AverageDailyBalance
	switch {
	case balance.GreaterThanOrEqual(decimal.NewFromFloat(3000 * f)):
		score += 60
	case balance.GreaterThanOrEqual(decimal.NewFromFloat(1500 * f)):
		score += 40
	case balance.GreaterThanOrEqual(decimal.NewFromFloat(500 * f)):
		score += 20
	default:
		score += 5
	}

	score += paymentRateBonus(n.UtilityPaymentRate, 0.90, 0.75, 0.50)
	score += paymentRateBonus(n.RentPaymentRate, 0.95, 0.80, 0.50)

	return clampScore(score, p.Weights.Capacity)
}

// paymentRateBonus awards 30/20/10 points as the on-time rate clears each
// band.
func paymentRateBonus(rate, high, mid, low float64) int {
	switch {
	case rate >= high:
		return 30
	case rate >= mid:
		return 20
	case rate >= low:
		return 10
	default:
		return 0
	}
}

// clampScore bounds a sub-score to [0, weight] so misconfiguration can never
// push the aggregate past the nominal maximum.
func clampScore(score, weight int) int {
	if score < 0 {
		return 0
	}
	if score > weight {
		return weight
	}
	return score
}
