package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// DecisionStatus – immutable value object
// ---------------------------------------------------------------------------

// DecisionStatus is the outcome of the lending decision.
type DecisionStatus struct {
	value string
}

const (
	decisionApproved     = "APPROVED"
	decisionDenied       = "DENIED"
	decisionCounteroffer = "COUNTEROFFER"
	decisionReview       = "REVIEW"
)

var (
	DecisionApproved     = DecisionStatus{value: decisionApproved}
	DecisionDenied       = DecisionStatus{value: decisionDenied}
	DecisionCounteroffer = DecisionStatus{value: decisionCounteroffer}
	// DecisionReview is the safe fallback when decision derivation fails
	// unexpectedly; it is never produced by the decision engine itself.
	DecisionReview = DecisionStatus{value: decisionReview}
)

var validDecisionStatuses = map[string]DecisionStatus{
	decisionApproved:     DecisionApproved,
	decisionDenied:       DecisionDenied,
	decisionCounteroffer: DecisionCounteroffer,
	decisionReview:       DecisionReview,
}

// NewDecisionStatus creates a DecisionStatus from a raw string.
func NewDecisionStatus(s string) (DecisionStatus, error) {
	v, ok := validDecisionStatuses[s]
	if !ok {
		return DecisionStatus{}, fmt.Errorf("invalid decision status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s DecisionStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s DecisionStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s DecisionStatus) Equal(other DecisionStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// OfferType – immutable value object
// ---------------------------------------------------------------------------

// OfferType tags a loan offer with the product variant it represents.
type OfferType struct {
	value string
}

const (
	offerPrimary            = "PRIMARY"
	offerSecuredAlternative = "SECURED_ALTERNATIVE"
	offerExtendedTerm       = "EXTENDED_TERM"
	offerCoApplicant        = "CO_APPLICANT"
)

var (
	OfferPrimary            = OfferType{value: offerPrimary}
	OfferSecuredAlternative = OfferType{value: offerSecuredAlternative}
	OfferExtendedTerm       = OfferType{value: offerExtendedTerm}
	OfferCoApplicant        = OfferType{value: offerCoApplicant}
)

// String returns the string representation of the offer type.
func (t OfferType) String() string { return t.value }

// IsZero returns true if the offer type has not been initialised.
func (t OfferType) IsZero() bool { return t.value == "" }

// Equal returns true when both offer types carry the same value.
func (t OfferType) Equal(other OfferType) bool { return t.value == other.value }
