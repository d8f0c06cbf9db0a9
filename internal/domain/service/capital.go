package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
)

// ---------------------------------------------------------------------------
// Capital scorer – what reserves back the applicant?
// ---------------------------------------------------------------------------

// ScoreCapital evaluates reserves: savings consistency, cash-flow stability,
// and a coarser average-daily-balance band than the one Capacity uses.
func ScoreCapital(n model.NormalizedApplicant, p policy.ScoringPolicy) int {
	score := 0

	switch sc := n.SavingsConsistency; {
	case sc >= 0.8:
		score += 60
	case sc >= 0.5:
		score += 40
	case sc >= 0.3:
		score += 25
	default:
		score += 10
	}

	switch cf := n.CashFlowStability; {
	case cf >= 0.8:
		score += 50
	case cf >= 0.5:
		score += 35
	case cf >= 0.3:
		score += 20
	default:
		score += 5
	}

	// Coarse balance buckets, independent of the macro-scaled Capacity bands.
	balance := n.AverageDailyBalance
	switch {
	case balance.GreaterThanOrEqual(decimal.NewFromInt(5000)):
		score += 40
	case balance.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		score += 25
	default:
		score += 10
	}

	return clampScore(score, p.Weights.Capital)
}
