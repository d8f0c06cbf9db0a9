package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ScoreResult – derived, never mutated after computation
// ---------------------------------------------------------------------------

// DisclosureZeroIncome is attached when scoring short-circuits on an
// applicant with no verifiable monthly income.
const DisclosureZeroIncome = "ZERO_INCOME"

// CategoryBreakdown holds the per-category sub-scores plus the external
// enrichment bonus and monitoring adjustment that make up the total.
type CategoryBreakdown struct {
	Capacity   int `json:"capacity"`
	Character  int `json:"character"`
	Capital    int `json:"capital"`
	Collateral int `json:"collateral"`
	Conditions int `json:"conditions"`
	External   int `json:"external"`
	Monitoring int `json:"monitoring"`
}

// Sum returns the raw total across all components before clamping.
func (b CategoryBreakdown) Sum() int {
	return b.Capacity + b.Character + b.Capital + b.Collateral + b.Conditions +
		b.External + b.Monitoring
}

// ScoreResult is the outcome of one scoring invocation. It is computed fresh
// per call from the applicant profile and scoring policy, and is purely
// derived: identical inputs always produce an identical result apart from
// the timestamp. RecommendedLimit is expressed in the currency the applicant
// submitted their amounts in.
type ScoreResult struct {
	TotalScore       int                  `json:"total_score"`
	Tier             valueobject.RiskTier `json:"tier"`
	Breakdown        CategoryBreakdown    `json:"breakdown"`
	RecommendedLimit decimal.Decimal      `json:"recommended_limit"`
	Disclosures      []string             `json:"disclosures,omitempty"`
	Notes            []string             `json:"notes,omitempty"`
	Timestamp        time.Time            `json:"timestamp"`
}

// HasDisclosure reports whether the given disclosure code is attached.
func (r ScoreResult) HasDisclosure(code string) bool {
	for _, d := range r.Disclosures {
		if d == code {
			return true
		}
	}
	return false
}

// ZeroIncomeResult is the fixed result returned when normalized monthly
// income is zero: no factor scorer runs, avoiding divide-by-zero ratio
// computations downstream.
func ZeroIncomeResult(now time.Time) ScoreResult {
	return ScoreResult{
		TotalScore:       0,
		Tier:             valueobject.TierPoor,
		RecommendedLimit: decimal.Zero,
		Disclosures:      []string{DisclosureZeroIncome},
		Notes:            []string{"monthly income is zero; scoring short-circuited"},
		Timestamp:        now,
	}
}
