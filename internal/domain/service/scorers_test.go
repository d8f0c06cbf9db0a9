package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

func normalize(t *testing.T, profile model.ApplicantProfile, pol policy.ScoringPolicy) model.NormalizedApplicant {
	t.Helper()
	n, err := NormalizeApplicant(profile, pol)
	require.NoError(t, err)
	return n
}

func TestScoreCapacity_ReferenceApplicant(t *testing.T) {
	pol := defaultPolicy(t)
	n := normalize(t, exampleProfile(), pol)

	// DSR 0.033 (200), moderate employment (50), medium industry (25),
	// disposable ratio 0.73 (60), balance 2500 (40), utility 0.83 (20),
	// rent 1.0 (30).
	assert.Equal(t, 425, ScoreCapacity(n, pol))
}

func TestScoreCapacity_HighDebtLoad(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.MonthlyDebtPayments = decimal.NewFromInt(3_000)
	n := normalize(t, profile, pol)

	// DSR 0.5 bottoms out the debt-service band.
	assert.Less(t, ScoreCapacity(n, pol), 300)
}

func TestScoreCapacity_NeverExceedsWeight(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.MonthlyIncome = decimal.NewFromInt(50_000)
	profile.MonthlyDebtPayments = decimal.Zero
	profile.AverageDailyBalance = decimal.NewFromInt(100_000)
	profile.EmploymentStability = valueobject.EmploymentStable
	profile.IndustryRisk = valueobject.IndustryRiskLow
	profile.UtilityPaymentRate = 1.0
	profile.RentPaymentRate = 1.0
	n := normalize(t, profile, pol)

	assert.Equal(t, pol.Weights.Capacity, ScoreCapacity(n, pol))
}

func TestScoreCharacter_CleanHistory(t *testing.T) {
	pol := defaultPolicy(t)
	n := normalize(t, exampleProfile(), pol)

	// Clean legal history (90), short residence (15), short tenure (25),
	// default literacy 0.5 (40).
	assert.Equal(t, 170, ScoreCharacter(n, pol))
}

func TestScoreCharacter_BankruptcyZeroesLegalComponent(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.Bankruptcies = 1
	n := normalize(t, profile, pol)

	assert.Equal(t, 80, ScoreCharacter(n, pol))
}

func TestScoreCharacter_RedFlagPenalties(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.BehavioralRedFlags = []string{"gambling", "unknown_flag"}
	n := normalize(t, profile, pol)

	// 170 baseline minus 40 (gambling) minus 25 (default penalty).
	assert.Equal(t, 105, ScoreCharacter(n, pol))
}

func TestScoreCharacter_HighEarnerRedistributionKeepsTotal(t *testing.T) {
	pol := defaultPolicy(t)

	low := exampleProfile()
	low.FinancialLiteracy = 0.9
	high := low
	high.MonthlyIncome = decimal.NewFromInt(20_000)
	high.MonthlyExpenses = decimal.NewFromInt(1_400)

	// The compression moves literacy points into stability but never
	// changes the sum.
	assert.Equal(t,
		ScoreCharacter(normalize(t, low, pol), pol),
		ScoreCharacter(normalize(t, high, pol), pol))
}

func TestScoreCapital_ReferenceApplicant(t *testing.T) {
	pol := defaultPolicy(t)
	n := normalize(t, exampleProfile(), pol)

	// Default savings consistency (40), default cash flow (35),
	// balance 2500 (25).
	assert.Equal(t, 100, ScoreCapital(n, pol))
}

func TestScoreCollateral_NoneScoresZero(t *testing.T) {
	pol := defaultPolicy(t)
	n := normalize(t, exampleProfile(), pol)

	assert.Equal(t, 0, ScoreCollateral(n, pol))
}

func TestScoreCollateral_LowLTVRealEstate(t *testing.T) {
	pol := defaultPolicy(t)
	profile := exampleProfile()
	profile.CollateralValue = decimal.NewFromInt(10_000)
	profile.CollateralType = valueobject.CollateralRealEstate
	n := normalize(t, profile, pol)

	// LTV 0.5 band (25) x liquidity 0.6 x multiplier 1.0 x personal 1.0.
	assert.Equal(t, 15, ScoreCollateral(n, pol))
}

func TestScoreCollateral_MortgageMultiplier(t *testing.T) {
	pol := defaultPolicy(t)
	pol.LoanType = valueobject.LoanTypeMortgage

	profile := exampleProfile()
	profile.CollateralValue = decimal.NewFromInt(10_000)
	profile.CollateralType = valueobject.CollateralRealEstate
	n := normalize(t, profile, pol)

	// 25 x 0.6 x 1.0 x 1.5 rounds to 23, inside the real-estate cap.
	assert.Equal(t, 23, ScoreCollateral(n, pol))
}

func TestScoreCollateral_UnsecuredCardScoresZero(t *testing.T) {
	pol := defaultPolicy(t)
	pol.LoanType = valueobject.LoanTypeCreditCard

	profile := exampleProfile()
	profile.CollateralValue = decimal.NewFromInt(1_000)
	profile.CollateralType = valueobject.CollateralCashDeposit
	n := normalize(t, profile, pol)

	assert.Equal(t, 0, ScoreCollateral(n, pol))

	// The secured variant scores it like a personal product.
	pol.IsSecuredCard = true
	assert.Positive(t, ScoreCollateral(n, pol))
}

func TestScoreConditions_ReferenceApplicant(t *testing.T) {
	pol := defaultPolicy(t)
	n := normalize(t, exampleProfile(), pol)

	// Term 36 (6), neutral macro (6), medium industry (3), other purpose (2).
	assert.Equal(t, 17, ScoreConditions(n, pol))
}

func TestScoreConditions_BusinessMultiplierClampsAtWeight(t *testing.T) {
	pol := defaultPolicy(t)
	pol.LoanType = valueobject.LoanTypeBusiness
	n := normalize(t, exampleProfile(), pol)

	// 17 x 1.5 rounds to 26, clamped to the conditions weight.
	assert.Equal(t, pol.Weights.Conditions, ScoreConditions(n, pol))
}
