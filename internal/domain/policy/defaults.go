package policy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// Default returns the baseline scoring policy: 1000-point scale, standard
// tier bands, and the stock rate/fee/limit tables.
func Default() ScoringPolicy {
	return ScoringPolicy{
		MaxTotalScore: 1000,
		Weights: Weights{
			Capacity:   500,
			Character:  300,
			Capital:    150,
			Collateral: 25,
			Conditions: 25,
		},
		Thresholds: Thresholds{
			Fair:      450,
			Good:      600,
			VeryGood:  750,
			Excellent: 850,
		},

		LoanType: valueobject.LoanTypePersonal,

		Personal:   LoanTypeProfile{CollateralMultiplier: 1.0, ConditionsMultiplier: 1.0, MaxTermMonths: 84},
		Mortgage:   LoanTypeProfile{CollateralMultiplier: 1.5, ConditionsMultiplier: 1.2, MaxTermMonths: 360},
		Business:   LoanTypeProfile{CollateralMultiplier: 1.2, ConditionsMultiplier: 1.5, MaxTermMonths: 120},
		CreditCard: LoanTypeProfile{CollateralMultiplier: 0, ConditionsMultiplier: 1.0, MaxTermMonths: 0},

		RealEstate:  CollateralProfile{Multiplier: 1.0, Liquidity: 0.6, MaxScore: 25},
		Vehicle:     CollateralProfile{Multiplier: 0.8, Liquidity: 0.7, MaxScore: 20},
		CashDeposit: CollateralProfile{Multiplier: 1.2, Liquidity: 1.0, MaxScore: 25},
		Securities:  CollateralProfile{Multiplier: 0.9, Liquidity: 0.9, MaxScore: 22},
		Equipment:   CollateralProfile{Multiplier: 0.6, Liquidity: 0.4, MaxScore: 15},

		Rates: RateMatrix{
			Secured: TierRates{
				Poor: 1800, Fair: 1400, Good: 1100, VeryGood: 850, Excellent: 650,
			},
			Unsecured: TierRates{
				Poor: 2800, Fair: 2200, Good: 1600, VeryGood: 1200, Excellent: 900,
			},
		},
		TermAdjustments: []TermRateAdjustment{
			{MinTermMonths: 36, AdjustmentBps: 50},
			{MinTermMonths: 60, AdjustmentBps: 75},
			{MinTermMonths: 120, AdjustmentBps: 100},
		},
		Fees: []FeeSpec{
			PercentageFee{
				Name:    "origination",
				Percent: 2.0,
				Min:     decimal.NewFromInt(50),
				Max:     decimal.NewFromInt(500),
			},
			FixedFee{
				Name:   "processing",
				Amount: decimal.NewFromInt(25),
			},
			RiskBasedFee{
				Name: "underwriting",
				Table: TierAmounts{
					Poor:      decimal.NewFromInt(150),
					Fair:      decimal.NewFromInt(100),
					Good:      decimal.NewFromInt(75),
					VeryGood:  decimal.NewFromInt(50),
					Excellent: decimal.NewFromInt(25),
				},
			},
		},
		CreditLimits: TierAmounts{
			Poor:      decimal.NewFromInt(500),
			Fair:      decimal.NewFromInt(2_000),
			Good:      decimal.NewFromInt(10_000),
			VeryGood:  decimal.NewFromInt(25_000),
			Excellent: decimal.NewFromInt(50_000),
		},
		SecuredCard: SecuredCardPolicy{
			MinDeposit: decimal.NewFromInt(200),
			MaxDeposit: decimal.NewFromInt(5_000),
		},

		HighIncomeThreshold: decimal.NewFromInt(10_000),
		RedFlagPenalties: map[string]int{
			"gambling":     40,
			"payday_loans": 30,
			"overdrafts":   20,
		},
		DefaultRedFlagPenalty: 25,

		MinScoreSecured:   450,
		MinScoreUnsecured: 600,
		MaxDTI:            0.43,
		MaxLTV:            0.80,
		MaxAPRBps:         3600,

		CurrencyRate: 1.0,
		Macro: MacroConditions{
			InflationRate:    baselineInflation,
			UnemploymentRate: baselineUnemployment,
		},

		FetchExternalData: false,
		EnableMonitoring:  false,
		EnrichmentTimeout: 2 * time.Second,
		MonitoringWindow:  12,

		OfferValidity:  30 * 24 * time.Hour,
		PreviewPeriods: 12,
	}
}
