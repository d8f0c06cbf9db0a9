package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Collateral scorer – what secures the loan?
// ---------------------------------------------------------------------------

// ScoreCollateral evaluates pledged security: a loan-to-value band scaled by
// the asset's liquidity and per-type multiplier, capped at the type's maximum
// score. An unsecured credit-card application scores zero through the loan
// type's collateral multiplier.
func ScoreCollateral(n model.NormalizedApplicant, p policy.ScoringPolicy) int {
	if !n.HasCollateral() {
		return 0
	}

	typeMult := p.LoanTypeProfileFor(p.LoanType).CollateralMultiplier
	if p.LoanType.Equal(valueobject.LoanTypeCreditCard) && p.IsSecuredCard {
		// Secured cards score collateral like a personal product.
		typeMult = p.Personal.CollateralMultiplier
	}
	if typeMult == 0 {
		return 0
	}

	profile := p.CollateralProfileFor(n.CollateralType)
	if profile.Multiplier == 0 {
		return 0
	}

	ltvScore := ltvBandScore(n.RequestedAmount, n.CollateralValue)

	raw := float64(ltvScore) * profile.Liquidity * profile.Multiplier * typeMult
	score := int(math.Round(raw))
	if score > profile.MaxScore {
		score = profile.MaxScore
	}
	return clampScore(score, p.Weights.Collateral)
}

// ltvBandScore grades how well the collateral covers the requested amount.
func ltvBandScore(requested, collateralValue decimal.Decimal) int {
	if collateralValue.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	ltv := requested.Div(collateralValue).InexactFloat64()
	switch {
	case ltv <= 0.5:
		return 25
	case ltv <= 0.7:
		return 20
	case ltv <= 0.9:
		return 12
	case ltv <= 1.0:
		return 6
	default:
		return 2
	}
}
