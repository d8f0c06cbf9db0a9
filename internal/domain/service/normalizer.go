package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Input normalizer – currency conversion, defaults, range validation
// ---------------------------------------------------------------------------

// NormalizeApplicant validates the raw profile and produces a fresh
// normalized record: monetary fields converted to the reference currency,
// unreported ratios defaulted, categorical fields filled in. The input
// profile is never mutated.
//
// A zero normalized monthly income is NOT an error; callers must check
// MonthlyIncome and short-circuit to the fixed zero-income result before
// running any factor scorer.
func NormalizeApplicant(p model.ApplicantProfile, pol policy.ScoringPolicy) (model.NormalizedApplicant, error) {
	if err := validateProfile(p); err != nil {
		return model.NormalizedApplicant{}, err
	}

	n := model.NormalizedApplicant{
		ApplicantProfile: p,
		CurrencyRate:     pol.CurrencyRate,
	}

	// Currency conversion: local amounts divided by local-per-reference rate.
	rate := decimal.NewFromFloat(pol.CurrencyRate)
	n.MonthlyIncome = p.MonthlyIncome.Div(rate)
	n.MonthlyExpenses = p.MonthlyExpenses.Div(rate)
	n.MonthlyDebtPayments = p.MonthlyDebtPayments.Div(rate)
	n.AverageDailyBalance = p.AverageDailyBalance.Div(rate)
	n.SavingsBalance = p.SavingsBalance.Div(rate)
	n.RequestedAmount = p.RequestedAmount.Div(rate)
	n.CollateralValue = p.CollateralValue.Div(rate)
	n.CoApplicantIncome = p.CoApplicantIncome.Div(rate)

	// Defaults for unreported fields. A literal zero on these ratios means
	// "not supplied", not "observed zero".
	if n.FinancialLiteracy == 0 {
		n.FinancialLiteracy = 0.5
	}
	if n.SavingsConsistency == 0 {
		n.SavingsConsistency = 0.5
	}
	if n.CashFlowStability == 0 {
		n.CashFlowStability = 0.5
	}
	if n.TermMonths == 0 {
		n.TermMonths = 36
	}
	if n.EmploymentStability == "" {
		n.EmploymentStability = valueobject.EmploymentModerate
	}
	if n.IndustryRisk == "" {
		n.IndustryRisk = valueobject.IndustryRiskMedium
	}
	if n.LoanPurpose == "" {
		n.LoanPurpose = valueobject.PurposeOther
	}

	return n, nil
}

func validateProfile(p model.ApplicantProfile) error {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"monthly_income", p.MonthlyIncome},
		{"monthly_expenses", p.MonthlyExpenses},
		{"monthly_debt_payments", p.MonthlyDebtPayments},
		{"average_daily_balance", p.AverageDailyBalance},
		{"savings_balance", p.SavingsBalance},
		{"requested_amount", p.RequestedAmount},
		{"collateral_value", p.CollateralValue},
		{"co_applicant_income", p.CoApplicantIncome},
	} {
		if f.value.IsNegative() {
			return valueobject.NewValidationError(f.name, "must not be negative")
		}
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"credit_utilization", p.CreditUtilization},
		{"utility_payment_rate", p.UtilityPaymentRate},
		{"rent_payment_rate", p.RentPaymentRate},
		{"savings_consistency", p.SavingsConsistency},
		{"cash_flow_stability", p.CashFlowStability},
		{"financial_literacy", p.FinancialLiteracy},
	} {
		if f.value < 0 || f.value > 1 {
			return valueobject.NewValidationError(f.name, "must be in [0, 1]")
		}
	}

	for _, f := range []struct {
		name  string
		value int
	}{
		{"term_months", p.TermMonths},
		{"months_at_residence", p.MonthsAtResidence},
		{"months_employed", p.MonthsEmployed},
		{"job_changes", p.JobChanges},
		{"bankruptcies", p.Bankruptcies},
		{"legal_issues", p.LegalIssues},
		{"missed_payments", p.MissedPayments},
	} {
		if f.value < 0 {
			return valueobject.NewValidationError(f.name, "must not be negative")
		}
	}

	switch e := p.EmploymentStability; e {
	case "", valueobject.EmploymentStable, valueobject.EmploymentModerate, valueobject.EmploymentUnstable:
	default:
		return valueobject.NewValidationError("employment_stability", "unknown value "+string(e))
	}
	switch r := p.IndustryRisk; r {
	case "", valueobject.IndustryRiskLow, valueobject.IndustryRiskMedium, valueobject.IndustryRiskHigh:
	default:
		return valueobject.NewValidationError("industry_risk", "unknown value "+string(r))
	}

	// Whole-record invariant: pledged collateral needs a recognised type.
	// Checked here rather than as a field rule so the dependency between the
	// two fields is explicit.
	if p.CollateralValue.GreaterThan(decimal.Zero) && p.CollateralType.IsZero() {
		return valueobject.NewValidationError("collateral_type",
			"required when collateral_value is positive")
	}

	return nil
}
