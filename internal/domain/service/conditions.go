package service

import (
	"math"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Conditions scorer – what surrounds the loan?
// ---------------------------------------------------------------------------

// ScoreConditions evaluates the loan's context: term length, macro climate,
// employment sector risk, and stated purpose, scaled by the loan type's
// conditions multiplier.
func ScoreConditions(n model.NormalizedApplicant, p policy.ScoringPolicy) int {
	score := 0

	switch term := n.TermMonths; {
	case term <= 12:
		score += 8
	case term <= 36:
		score += 6
	case term <= 60:
		score += 4
	default:
		score += 2
	}

	// A macro factor below 1 signals a benign climate.
	switch f := p.MacroFactor(); {
	case f <= 0.95:
		score += 8
	case f <= 1.05:
		score += 6
	case f <= 1.15:
		score += 4
	default:
		score += 2
	}

	switch n.IndustryRisk {
	case valueobject.IndustryRiskLow:
		score += 5
	case valueobject.IndustryRiskMedium:
		score += 3
	default:
		score += 1
	}

	switch n.LoanPurpose {
	case valueobject.PurposeHomeImprovement, valueobject.PurposeEducation:
		score += 5
	case valueobject.PurposeDebtConsolidation:
		score += 4
	case valueobject.PurposeBusiness:
		score += 3
	default:
		score += 2
	}

	mult := p.LoanTypeProfileFor(p.LoanType).ConditionsMultiplier
	score = int(math.Round(float64(score) * mult))

	return clampScore(score, p.Weights.Conditions)
}
