package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LendingDecision – derived from ScoreResult + ApplicantProfile + policy
// ---------------------------------------------------------------------------

// Verification flag codes attached to high-tier decisions.
const (
	VerifyIncome             = "INCOME_VERIFICATION"
	VerifyAddress            = "ADDRESS_VERIFICATION"
	VerifyCollateralAppraise = "COLLATERAL_APPRAISAL"
)

// DecisionMetrics carries the affordability ratios computed during decision
// derivation.
type DecisionMetrics struct {
	// DTI is debt payments plus a trial installment over monthly income.
	DTI float64 `json:"dti"`
	// LTV is the requested or approved amount over collateral value; zero
	// when no collateral is pledged.
	LTV float64 `json:"ltv"`
	// DSCR is disposable income over total debt service.
	DSCR float64 `json:"dscr"`
}

// LendingDecision is the approve/deny/counteroffer outcome for one scoring
// result. The engine never persists it.
type LendingDecision struct {
	Status                valueobject.DecisionStatus `json:"status"`
	Reason                string                     `json:"reason"`
	ApprovedAmount        decimal.Decimal            `json:"approved_amount"`
	Metrics               DecisionMetrics            `json:"metrics"`
	RequiredVerifications []string                   `json:"required_verifications,omitempty"`
	CoApplicantRequired   bool                       `json:"co_applicant_required"`
}

// IsDenied reports whether the decision denies credit outright.
func (d LendingDecision) IsDenied() bool {
	return d.Status.Equal(valueobject.DecisionDenied)
}

// ReviewFallbackDecision is the safe decision returned when derivation fails
// unexpectedly; a scoring request always yields some structured result.
func ReviewFallbackDecision() LendingDecision {
	return LendingDecision{
		Status:         valueobject.DecisionReview,
		Reason:         "decision could not be derived automatically; queued for manual review",
		ApprovedAmount: decimal.Zero,
	}
}
