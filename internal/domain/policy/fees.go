package policy

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Fee schedule – tagged variants per fee type
// ---------------------------------------------------------------------------

// FeeSpec computes one fee on an offer amount. Implementations are the
// closed set of fee variants: percentage-of-amount, fixed, and risk-based.
type FeeSpec interface {
	FeeName() string
	Compute(amount decimal.Decimal, tier valueobject.RiskTier) decimal.Decimal
}

// PercentageFee charges a percentage of the offer amount, optionally clamped
// between Min and Max.
type PercentageFee struct {
	Name    string
	Percent float64
	Min     decimal.Decimal
	Max     decimal.Decimal
}

// FeeName returns the fee's display name.
func (f PercentageFee) FeeName() string { return f.Name }

// Compute applies the percentage with the optional min/max clamp.
func (f PercentageFee) Compute(amount decimal.Decimal, _ valueobject.RiskTier) decimal.Decimal {
	fee := amount.Mul(decimal.NewFromFloat(f.Percent / 100)).Round(2)
	if f.Min.GreaterThan(decimal.Zero) && fee.LessThan(f.Min) {
		fee = f.Min
	}
	if f.Max.GreaterThan(decimal.Zero) && fee.GreaterThan(f.Max) {
		fee = f.Max
	}
	return fee
}

// FixedFee charges a flat amount regardless of offer size or tier.
type FixedFee struct {
	Name   string
	Amount decimal.Decimal
}

// FeeName returns the fee's display name.
func (f FixedFee) FeeName() string { return f.Name }

// Compute returns the fixed amount.
func (f FixedFee) Compute(_ decimal.Decimal, _ valueobject.RiskTier) decimal.Decimal {
	return f.Amount
}

// RiskBasedFee charges a per-tier amount from a lookup table.
type RiskBasedFee struct {
	Name  string
	Table TierAmounts
}

// FeeName returns the fee's display name.
func (f RiskBasedFee) FeeName() string { return f.Name }

// Compute returns the amount keyed by the achieved tier.
func (f RiskBasedFee) Compute(_ decimal.Decimal, tier valueobject.RiskTier) decimal.Decimal {
	return f.Table.ForTier(tier)
}
