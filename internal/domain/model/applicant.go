package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ApplicantProfile – immutable input record
// ---------------------------------------------------------------------------

// PaymentRecord is one entry in an applicant's payment-history sequence.
type PaymentRecord struct {
	Month  time.Time `json:"month"`
	OnTime bool      `json:"on_time"`
}

// ApplicantProfile carries the already-validated financial and behavioral
// attributes of an applicant. Monetary fields are denominated in the
// applicant's local currency until normalization converts them.
//
// Invariants (enforced by the normalizer, not here): ratio fields are in
// [0,1], counts are non-negative, and a positive CollateralValue requires a
// valid CollateralType.
type ApplicantProfile struct {
	ApplicantID string `json:"applicant_id"`
	Currency    string `json:"currency"`

	// Monthly financials.
	MonthlyIncome       decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses     decimal.Decimal `json:"monthly_expenses"`
	MonthlyDebtPayments decimal.Decimal `json:"monthly_debt_payments"`
	AverageDailyBalance decimal.Decimal `json:"average_daily_balance"`
	SavingsBalance      decimal.Decimal `json:"savings_balance"`

	// Requested product.
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	TermMonths      int             `json:"term_months"`

	// Behavioral ratios, all in [0,1].
	CreditUtilization  float64 `json:"credit_utilization"`
	UtilityPaymentRate float64 `json:"utility_payment_rate"`
	RentPaymentRate    float64 `json:"rent_payment_rate"`
	SavingsConsistency float64 `json:"savings_consistency"`
	CashFlowStability  float64 `json:"cash_flow_stability"`
	FinancialLiteracy  float64 `json:"financial_literacy"`

	// Categorical risk fields.
	EmploymentStability valueobject.EmploymentStability `json:"employment_stability"`
	IndustryRisk        valueobject.IndustryRisk        `json:"industry_risk"`
	LoanPurpose         valueobject.LoanPurpose         `json:"loan_purpose"`

	// Stability counts.
	MonthsAtResidence int `json:"months_at_residence"`
	MonthsEmployed    int `json:"months_employed"`
	JobChanges        int `json:"job_changes"`
	Bankruptcies      int `json:"bankruptcies"`
	LegalIssues       int `json:"legal_issues"`
	MissedPayments    int `json:"missed_payments"`

	PaymentHistory     []PaymentRecord `json:"payment_history,omitempty"`
	BehavioralRedFlags []string        `json:"behavioral_red_flags,omitempty"`

	// Optional collateral.
	CollateralValue decimal.Decimal            `json:"collateral_value"`
	CollateralType  valueobject.CollateralType `json:"collateral_type,omitempty"`

	// Optional co-applicant.
	HasCoApplicant    bool            `json:"has_co_applicant"`
	CoApplicantIncome decimal.Decimal `json:"co_applicant_income"`
}

// HasCollateral returns true when a positive collateral value is pledged.
func (p ApplicantProfile) HasCollateral() bool {
	return p.CollateralValue.GreaterThan(decimal.Zero)
}

// ---------------------------------------------------------------------------
// NormalizedApplicant – output of the normalization stage
// ---------------------------------------------------------------------------

// NormalizedApplicant is a fresh record produced by the input normalizer:
// monetary fields converted to the reference currency, defaults applied,
// ratios bounded. The original ApplicantProfile is never mutated.
type NormalizedApplicant struct {
	ApplicantProfile

	// CurrencyRate is the local-currency-per-reference-currency rate the
	// monetary fields were divided by.
	CurrencyRate float64
}

// DisposableIncome is monthly income less expenses and debt payments.
func (n NormalizedApplicant) DisposableIncome() decimal.Decimal {
	return n.MonthlyIncome.Sub(n.MonthlyExpenses).Sub(n.MonthlyDebtPayments)
}

// DebtServiceRatio is monthly debt payments over monthly income. Callers
// must not invoke this with zero income; the normalizer short-circuits the
// zero-income case before any scorer runs.
func (n NormalizedApplicant) DebtServiceRatio() float64 {
	return n.MonthlyDebtPayments.Div(n.MonthlyIncome).InexactFloat64()
}

// DisposableIncomeRatio is disposable income over monthly income.
func (n NormalizedApplicant) DisposableIncomeRatio() float64 {
	return n.DisposableIncome().Div(n.MonthlyIncome).InexactFloat64()
}

// RecentOnTimeRate returns the on-time fraction of the most recent window
// payments, and false when no payment history exists.
func (n NormalizedApplicant) RecentOnTimeRate(window int) (float64, bool) {
	if len(n.PaymentHistory) == 0 {
		return 0, false
	}
	records := n.PaymentHistory
	if window > 0 && len(records) > window {
		records = records[len(records)-window:]
	}
	onTime := 0
	for _, r := range records {
		if r.OnTime {
			onTime++
		}
	}
	return float64(onTime) / float64(len(records)), true
}
