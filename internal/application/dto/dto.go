package dto

import (
	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
)

// ---------------------------------------------------------------------------
// Request/Response DTOs for the scoring and decisioning usecases
// ---------------------------------------------------------------------------

// ScoreRequest carries one applicant profile and the per-request policy
// overrides. Empty options run under the default policy.
type ScoreRequest struct {
	Applicant model.ApplicantProfile `json:"applicant"`
	Options   policy.Overrides       `json:"options"`
}

// ScoreResponse returns the computed score result.
type ScoreResponse struct {
	Result model.ScoreResult `json:"result"`
}

// EvaluationResponse returns the full pipeline output: score, lending
// decision, and any generated offers.
type EvaluationResponse struct {
	Result   model.ScoreResult     `json:"result"`
	Decision model.LendingDecision `json:"decision"`
	Offers   []model.LoanOffer     `json:"offers,omitempty"`
}
