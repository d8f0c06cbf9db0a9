package policy

import (
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Resolver – merge caller overrides over defaults, then validate
// ---------------------------------------------------------------------------

// Overrides carries caller-supplied configuration. Nil pointer fields keep
// the default value.
type Overrides struct {
	Weights      *Weights         `yaml:"weights" json:"weights"`
	Thresholds   *Thresholds      `yaml:"thresholds" json:"thresholds"`
	CreditLimits *TierAmounts     `yaml:"credit_limits" json:"credit_limits"`
	Rates        *RateMatrix      `yaml:"rates" json:"rates"`
	Macro        *MacroConditions `yaml:"macro_conditions" json:"macro_conditions"`

	LoanType string `yaml:"loan_type" json:"loan_type"`

	IsSecuredCard     *bool    `yaml:"is_secured_card" json:"is_secured_card"`
	FetchExternalData *bool    `yaml:"fetch_external_data" json:"fetch_external_data"`
	EnableMonitoring  *bool    `yaml:"enable_monitoring" json:"enable_monitoring"`
	CurrencyRate      *float64 `yaml:"currency_rate" json:"currency_rate"`
	MaxDTI            *float64 `yaml:"max_dti" json:"max_dti"`
	MaxLTV            *float64 `yaml:"max_ltv" json:"max_ltv"`
	MaxAPRBps         *int     `yaml:"max_apr_bps" json:"max_apr_bps"`
}

// Merge layers over on top of base: any field over sets wins, everything
// else falls through to base. Neither input is mutated.
func Merge(base, over Overrides) Overrides {
	out := base
	if over.Weights != nil {
		out.Weights = over.Weights
	}
	if over.Thresholds != nil {
		out.Thresholds = over.Thresholds
	}
	if over.CreditLimits != nil {
		out.CreditLimits = over.CreditLimits
	}
	if over.Rates != nil {
		out.Rates = over.Rates
	}
	if over.Macro != nil {
		out.Macro = over.Macro
	}
	if over.LoanType != "" {
		out.LoanType = over.LoanType
	}
	if over.IsSecuredCard != nil {
		out.IsSecuredCard = over.IsSecuredCard
	}
	if over.FetchExternalData != nil {
		out.FetchExternalData = over.FetchExternalData
	}
	if over.EnableMonitoring != nil {
		out.EnableMonitoring = over.EnableMonitoring
	}
	if over.CurrencyRate != nil {
		out.CurrencyRate = over.CurrencyRate
	}
	if over.MaxDTI != nil {
		out.MaxDTI = over.MaxDTI
	}
	if over.MaxLTV != nil {
		out.MaxLTV = over.MaxLTV
	}
	if over.MaxAPRBps != nil {
		out.MaxAPRBps = over.MaxAPRBps
	}
	return out
}

// Resolve merges the overrides over the default policy and validates the
// result. It fails fast with a ConfigurationError before any scoring runs.
func Resolve(o Overrides) (ScoringPolicy, error) {
	p := Default()

	if o.Weights != nil {
		p.Weights = *o.Weights
	}
	if o.Thresholds != nil {
		p.Thresholds = *o.Thresholds
	}
	if o.CreditLimits != nil {
		p.CreditLimits = *o.CreditLimits
	}
	if o.Rates != nil {
		p.Rates = *o.Rates
	}
	if o.Macro != nil {
		p.Macro = *o.Macro
	}
	if o.LoanType != "" {
		lt, err := valueobject.NewLoanType(o.LoanType)
		if err != nil {
			return ScoringPolicy{}, valueobject.NewConfigurationError("loan type: %v", err)
		}
		p.LoanType = lt
	}
	if o.IsSecuredCard != nil {
		p.IsSecuredCard = *o.IsSecuredCard
	}
	if o.FetchExternalData != nil {
		p.FetchExternalData = *o.FetchExternalData
	}
	if o.EnableMonitoring != nil {
		p.EnableMonitoring = *o.EnableMonitoring
	}
	if o.CurrencyRate != nil {
		p.CurrencyRate = *o.CurrencyRate
	}
	if o.MaxDTI != nil {
		p.MaxDTI = *o.MaxDTI
	}
	if o.MaxLTV != nil {
		p.MaxLTV = *o.MaxLTV
	}
	if o.MaxAPRBps != nil {
		p.MaxAPRBps = *o.MaxAPRBps
	}

	// Custom weights move the score ceiling with them.
	p.MaxTotalScore = p.Weights.Sum()

	if err := p.Validate(); err != nil {
		return ScoringPolicy{}, err
	}
	return p, nil
}

// Validate checks the policy invariants.
func (p ScoringPolicy) Validate() error {
	if p.Weights.Capacity <= 0 || p.Weights.Character <= 0 || p.Weights.Capital <= 0 ||
		p.Weights.Collateral <= 0 || p.Weights.Conditions <= 0 {
		return valueobject.NewConfigurationError("every category weight must be positive")
	}
	if p.Weights.Sum() != p.MaxTotalScore {
		return valueobject.NewConfigurationError(
			"weights sum %d does not match declared maximum %d", p.Weights.Sum(), p.MaxTotalScore)
	}

	t := p.Thresholds
	if !(0 < t.Fair && t.Fair < t.Good && t.Good < t.VeryGood && t.VeryGood < t.Excellent) {
		return valueobject.NewConfigurationError(
			"tier thresholds must be strictly increasing, got fair=%d good=%d very_good=%d excellent=%d",
			t.Fair, t.Good, t.VeryGood, t.Excellent)
	}
	if t.Excellent > p.MaxTotalScore {
		return valueobject.NewConfigurationError(
			"excellent threshold %d exceeds maximum score %d", t.Excellent, p.MaxTotalScore)
	}

	if p.MaxAPRBps <= 0 || p.MaxAPRBps > 10_000 {
		return valueobject.NewConfigurationError("max APR must be in (0, 100%%], got %d bps", p.MaxAPRBps)
	}
	for _, rates := range []TierRates{p.Rates.Secured, p.Rates.Unsecured} {
		for _, bps := range []int{rates.Poor, rates.Fair, rates.Good, rates.VeryGood, rates.Excellent} {
			if bps <= 0 {
				return valueobject.NewConfigurationError("every rate matrix entry must be positive")
			}
		}
	}

	if p.CurrencyRate <= 0 {
		return valueobject.NewConfigurationError("currency rate must be positive, got %f", p.CurrencyRate)
	}
	if p.MinScoreSecured >= p.MinScoreUnsecured {
		return valueobject.NewConfigurationError(
			"secured minimum score %d must be below unsecured minimum %d",
			p.MinScoreSecured, p.MinScoreUnsecured)
	}
	if p.MaxDTI <= 0 || p.MaxDTI > 1 {
		return valueobject.NewConfigurationError("max DTI must be in (0, 1], got %f", p.MaxDTI)
	}
	if p.MaxLTV <= 0 || p.MaxLTV > 1 {
		return valueobject.NewConfigurationError("max LTV must be in (0, 1], got %f", p.MaxLTV)
	}
	if p.SecuredCard.MinDeposit.GreaterThan(p.SecuredCard.MaxDeposit) {
		return valueobject.NewConfigurationError("secured card minimum deposit exceeds maximum")
	}
	return nil
}
