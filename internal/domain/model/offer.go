package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanOffer – concrete credit offer generated for a non-denied decision
// ---------------------------------------------------------------------------

// FeeLine is one computed fee on an offer.
type FeeLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// LoanOffer is a concrete product offer: amount, term, priced rate, the
// fee-inclusive APR, and a bounded amortization preview. One decision may
// yield between one and four offers.
type LoanOffer struct {
	ID                string                 `json:"id"`
	Type              valueobject.OfferType  `json:"type"`
	Amount            decimal.Decimal        `json:"amount"`
	TermMonths        int                    `json:"term_months"`
	RateBps           int                    `json:"rate_bps"`
	APRPercent        float64                `json:"apr_percent"`
	Fees              []FeeLine              `json:"fees,omitempty"`
	SchedulePreview   []AmortizationEntry    `json:"schedule_preview,omitempty"`
	ExpiresAt         time.Time              `json:"expires_at"`
	Conditions        []string               `json:"conditions,omitempty"`
	RequiredDocuments []string               `json:"required_documents,omitempty"`
}

// TotalFees sums all fee lines on the offer.
func (o LoanOffer) TotalFees() decimal.Decimal {
	total := decimal.Zero
	for _, f := range o.Fees {
		total = total.Add(f.Amount)
	}
	return total
}
