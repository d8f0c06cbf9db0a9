package policy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

func TestResolve_Defaults(t *testing.T) {
	p, err := Resolve(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, 1000, p.MaxTotalScore)
	assert.Equal(t, 1000, p.Weights.Sum())
	assert.Equal(t, 450, p.Thresholds.Fair)
	assert.Equal(t, valueobject.LoanTypePersonal, p.LoanType)
	assert.False(t, p.FetchExternalData)
	assert.Equal(t, 1.0, p.CurrencyRate)
}

func TestResolve_CustomWeightsMoveScoreCeiling(t *testing.T) {
	w := Weights{Capacity: 400, Character: 250, Capital: 150, Collateral: 100, Conditions: 100}
	p, err := Resolve(Overrides{Weights: &w})
	require.NoError(t, err)

	assert.Equal(t, 1000, p.MaxTotalScore)

	small := Weights{Capacity: 50, Character: 30, Capital: 15, Collateral: 3, Conditions: 2}
	thresholds := Thresholds{Fair: 45, Good: 60, VeryGood: 75, Excellent: 85}
	p, err = Resolve(Overrides{Weights: &small, Thresholds: &thresholds})
	require.NoError(t, err)
	assert.Equal(t, 100, p.MaxTotalScore)
}

func TestResolve_RejectsNonIncreasingThresholds(t *testing.T) {
	bad := Thresholds{Fair: 600, Good: 450, VeryGood: 750, Excellent: 850}
	_, err := Resolve(Overrides{Thresholds: &bad})

	require.Error(t, err)
	var cfgErr *valueobject.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestResolve_RejectsThresholdAboveMaximum(t *testing.T) {
	bad := Thresholds{Fair: 450, Good: 600, VeryGood: 750, Excellent: 1200}
	_, err := Resolve(Overrides{Thresholds: &bad})
	require.Error(t, err)
}

func TestResolve_RejectsUnknownLoanType(t *testing.T) {
	_, err := Resolve(Overrides{LoanType: "payday"})
	require.Error(t, err)
}

func TestResolve_RejectsZeroCurrencyRate(t *testing.T) {
	zero := 0.0
	_, err := Resolve(Overrides{CurrencyRate: &zero})
	require.Error(t, err)
}

func TestResolve_RejectsAPRAboveFullRate(t *testing.T) {
	tooHigh := 12_000
	_, err := Resolve(Overrides{MaxAPRBps: &tooHigh})
	require.Error(t, err)
}

func TestMerge_RequestOverridesWinOverFile(t *testing.T) {
	fileRate := 4.5
	fileMonitoring := true
	base := Overrides{CurrencyRate: &fileRate, EnableMonitoring: &fileMonitoring, LoanType: "PERSONAL"}

	reqRate := 2.0
	merged := Merge(base, Overrides{CurrencyRate: &reqRate, LoanType: "BUSINESS"})

	require.NotNil(t, merged.CurrencyRate)
	assert.Equal(t, 2.0, *merged.CurrencyRate)
	assert.Equal(t, "BUSINESS", merged.LoanType)
	require.NotNil(t, merged.EnableMonitoring)
	assert.True(t, *merged.EnableMonitoring)
}

func TestMacroFactor_ClampedAndCentered(t *testing.T) {
	p := Default()
	assert.InDelta(t, 1.0, p.MacroFactor(), 0.001)

	p.Macro = MacroConditions{InflationRate: 0.30, UnemploymentRate: 0.25}
	assert.Equal(t, 1.2, p.MacroFactor())

	p.Macro = MacroConditions{InflationRate: 0.0, UnemploymentRate: 0.0}
	assert.InDelta(t, 0.8, p.MacroFactor(), 0.001)
}

func TestThresholds_ClassifyTiesGoUp(t *testing.T) {
	th := Default().Thresholds

	assert.Equal(t, valueobject.TierPoor, th.Classify(449))
	assert.Equal(t, valueobject.TierFair, th.Classify(450))
	assert.Equal(t, valueobject.TierGood, th.Classify(600))
	assert.Equal(t, valueobject.TierVeryGood, th.Classify(750))
	assert.Equal(t, valueobject.TierExcellent, th.Classify(850))
	assert.Equal(t, valueobject.TierExcellent, th.Classify(1000))
}

func TestTierTables_CoverEveryTier(t *testing.T) {
	p := Default()
	for _, tier := range valueobject.AllTiers() {
		assert.Positive(t, p.Rates.Secured.ForTier(tier))
		assert.Positive(t, p.Rates.Unsecured.ForTier(tier))
		assert.True(t, p.CreditLimits.ForTier(tier).GreaterThan(decimal.Zero))
	}
}

func TestRedFlagPenalty_FallsBackToDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, 40, p.RedFlagPenalty("gambling"))
	assert.Equal(t, 25, p.RedFlagPenalty("crypto_daytrading"))
}
