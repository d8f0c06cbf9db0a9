package policy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ScoringPolicy – weights, thresholds, rate tables, fee schedules
// ---------------------------------------------------------------------------

// Weights assigns the maximum attainable points per factor category.
type Weights struct {
	Capacity   int `yaml:"capacity" json:"capacity"`
	Character  int `yaml:"character" json:"character"`
	Capital    int `yaml:"capital" json:"capital"`
	Collateral int `yaml:"collateral" json:"collateral"`
	Conditions int `yaml:"conditions" json:"conditions"`
}

// Sum returns the combined weight across all categories.
func (w Weights) Sum() int {
	return w.Capacity + w.Character + w.Capital + w.Collateral + w.Conditions
}

// Thresholds holds the minimum total score for each tier above Poor. Poor is
// the implicit band below Fair.
type Thresholds struct {
	Fair      int `yaml:"fair" json:"fair"`
	Good      int `yaml:"good" json:"good"`
	VeryGood  int `yaml:"very_good" json:"very_good"`
	Excellent int `yaml:"excellent" json:"excellent"`
}

// Classify returns the highest tier whose threshold the score meets; ties go
// to the higher band.
func (t Thresholds) Classify(score int) valueobject.RiskTier {
	switch {
	case score >= t.Excellent:
		return valueobject.TierExcellent
	case score >= t.VeryGood:
		return valueobject.TierVeryGood
	case score >= t.Good:
		return valueobject.TierGood
	case score >= t.Fair:
		return valueobject.TierFair
	default:
		return valueobject.TierPoor
	}
}

// TierRates maps every tier to an annual rate in basis points. A struct field
// per tier gives compile-time exhaustiveness instead of string-keyed lookups.
type TierRates struct {
	Poor      int `yaml:"poor" json:"poor"`
	Fair      int `yaml:"fair" json:"fair"`
	Good      int `yaml:"good" json:"good"`
	VeryGood  int `yaml:"very_good" json:"very_good"`
	Excellent int `yaml:"excellent" json:"excellent"`
}

// ForTier returns the rate for the given tier.
func (r TierRates) ForTier(tier valueobject.RiskTier) int {
	switch tier {
	case valueobject.TierExcellent:
		return r.Excellent
	case valueobject.TierVeryGood:
		return r.VeryGood
	case valueobject.TierGood:
		return r.Good
	case valueobject.TierFair:
		return r.Fair
	default:
		return r.Poor
	}
}

// RateMatrix prices secured and unsecured products per tier.
type RateMatrix struct {
	Secured   TierRates `yaml:"secured" json:"secured"`
	Unsecured TierRates `yaml:"unsecured" json:"unsecured"`
}

// TierAmounts maps every tier to a monetary amount.
type TierAmounts struct {
	Poor      decimal.Decimal `yaml:"poor" json:"poor"`
	Fair      decimal.Decimal `yaml:"fair" json:"fair"`
	Good      decimal.Decimal `yaml:"good" json:"good"`
	VeryGood  decimal.Decimal `yaml:"very_good" json:"very_good"`
	Excellent decimal.Decimal `yaml:"excellent" json:"excellent"`
}

// ForTier returns the amount for the given tier.
func (a TierAmounts) ForTier(tier valueobject.RiskTier) decimal.Decimal {
	switch tier {
	case valueobject.TierExcellent:
		return a.Excellent
	case valueobject.TierVeryGood:
		return a.VeryGood
	case valueobject.TierGood:
		return a.Good
	case valueobject.TierFair:
		return a.Fair
	default:
		return a.Poor
	}
}

// TermRateAdjustment adds basis points once the term crosses a threshold.
// Adjustments accumulate: a 72-month term crossing two thresholds pays both.
type TermRateAdjustment struct {
	MinTermMonths int `yaml:"min_term_months" json:"min_term_months"`
	AdjustmentBps int `yaml:"adjustment_bps" json:"adjustment_bps"`
}

// LoanTypeProfile scales the collateral and conditions categories for one
// loan product and bounds its term.
type LoanTypeProfile struct {
	CollateralMultiplier float64 `yaml:"collateral_multiplier" json:"collateral_multiplier"`
	ConditionsMultiplier float64 `yaml:"conditions_multiplier" json:"conditions_multiplier"`
	MaxTermMonths        int     `yaml:"max_term_months" json:"max_term_months"`
}

// CollateralProfile grades one collateral asset class.
type CollateralProfile struct {
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
	Liquidity  float64 `yaml:"liquidity" json:"liquidity"`
	MaxScore   int     `yaml:"max_score" json:"max_score"`
}

// MacroConditions are the caller-supplied macroeconomic inputs.
type MacroConditions struct {
	InflationRate    float64 `yaml:"inflation_rate" json:"inflation_rate"`
	UnemploymentRate float64 `yaml:"unemployment_rate" json:"unemployment_rate"`
}

// SecuredCardPolicy bounds the refundable deposit on a secured card.
type SecuredCardPolicy struct {
	MinDeposit decimal.Decimal `yaml:"min_deposit" json:"min_deposit"`
	MaxDeposit decimal.Decimal `yaml:"max_deposit" json:"max_deposit"`
}

// ScoringPolicy is the fully resolved configuration a scoring call runs
// under. Build one with Resolve; a zero value is not usable.
type ScoringPolicy struct {
	MaxTotalScore int
	Weights       Weights
	Thresholds    Thresholds

	LoanType      valueobject.LoanType
	IsSecuredCard bool

	Personal   LoanTypeProfile
	Mortgage   LoanTypeProfile
	Business   LoanTypeProfile
	CreditCard LoanTypeProfile

	RealEstate  CollateralProfile
	Vehicle     CollateralProfile
	CashDeposit CollateralProfile
	Securities  CollateralProfile
	Equipment   CollateralProfile

	Rates           RateMatrix
	TermAdjustments []TermRateAdjustment
	Fees            []FeeSpec
	CreditLimits    TierAmounts
	SecuredCard     SecuredCardPolicy

	// Character: monthly income above this compresses the financial-literacy
	// contribution and redistributes it into residence/job stability.
	HighIncomeThreshold decimal.Decimal
	RedFlagPenalties    map[string]int
	DefaultRedFlagPenalty int

	MinScoreSecured   int
	MinScoreUnsecured int
	MaxDTI            float64
	MaxLTV            float64
	MaxAPRBps         int

	CurrencyRate float64
	Macro        MacroConditions

	FetchExternalData bool
	EnableMonitoring  bool
	EnrichmentTimeout time.Duration
	MonitoringWindow  int

	OfferValidity  time.Duration
	PreviewPeriods int
}

// LoanTypeProfile returns the profile for the policy's loan type.
func (p ScoringPolicy) LoanTypeProfileFor(t valueobject.LoanType) LoanTypeProfile {
	switch t {
	case valueobject.LoanTypeMortgage:
		return p.Mortgage
	case valueobject.LoanTypeBusiness:
		return p.Business
	case valueobject.LoanTypeCreditCard:
		return p.CreditCard
	default:
		return p.Personal
	}
}

// CollateralProfileFor returns the profile for the given collateral type.
func (p ScoringPolicy) CollateralProfileFor(t valueobject.CollateralType) CollateralProfile {
	switch t {
	case valueobject.CollateralRealEstate:
		return p.RealEstate
	case valueobject.CollateralVehicle:
		return p.Vehicle
	case valueobject.CollateralCashDeposit:
		return p.CashDeposit
	case valueobject.CollateralSecurities:
		return p.Securities
	case valueobject.CollateralEquipment:
		return p.Equipment
	default:
		return CollateralProfile{}
	}
}

// RedFlagPenalty returns the point penalty for a behavioral red flag.
func (p ScoringPolicy) RedFlagPenalty(flag string) int {
	if pts, ok := p.RedFlagPenalties[flag]; ok {
		return pts
	}
	return p.DefaultRedFlagPenalty
}

// MacroFactor derives the threshold scaling factor from the macro inputs,
// clamped to [0.8, 1.2]. Worse conditions push the factor above 1, widening
// the bands an applicant must clear.
func (p ScoringPolicy) MacroFactor() float64 {
	factor := 1.0 +
		(p.Macro.InflationRate-baselineInflation)*2.0 +
		(p.Macro.UnemploymentRate-baselineUnemployment)*1.5
	if factor < 0.8 {
		return 0.8
	}
	if factor > 1.2 {
		return 1.2
	}
	return factor
}

const (
	baselineInflation    = 0.03
	baselineUnemployment = 0.05
)
