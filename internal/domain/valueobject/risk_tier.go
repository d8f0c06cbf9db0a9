package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskTier – immutable value object
// ---------------------------------------------------------------------------

// RiskTier is the classification band an applicant's total score falls into.
type RiskTier struct {
	value string
	rank  int
}

const (
	tierPoor      = "POOR"
	tierFair      = "FAIR"
	tierGood      = "GOOD"
	tierVeryGood  = "VERY_GOOD"
	tierExcellent = "EXCELLENT"
)

var (
	TierPoor      = RiskTier{value: tierPoor, rank: 0}
	TierFair      = RiskTier{value: tierFair, rank: 1}
	TierGood      = RiskTier{value: tierGood, rank: 2}
	TierVeryGood  = RiskTier{value: tierVeryGood, rank: 3}
	TierExcellent = RiskTier{value: tierExcellent, rank: 4}
)

var validTiers = map[string]RiskTier{
	tierPoor:      TierPoor,
	tierFair:      TierFair,
	tierGood:      TierGood,
	tierVeryGood:  TierVeryGood,
	tierExcellent: TierExcellent,
}

// NewRiskTier creates a RiskTier from a raw string.
func NewRiskTier(s string) (RiskTier, error) {
	v, ok := validTiers[s]
	if !ok {
		return RiskTier{}, fmt.Errorf("invalid risk tier: %q", s)
	}
	return v, nil
}

// String returns the string representation of the tier.
func (t RiskTier) String() string { return t.value }

// Rank returns the ordinal position of the tier; Poor is 0, Excellent is 4.
func (t RiskTier) Rank() int { return t.rank }

// IsZero returns true if the tier has not been initialised.
func (t RiskTier) IsZero() bool { return t.value == "" }

// Equal returns true when both tiers carry the same value.
func (t RiskTier) Equal(other RiskTier) bool { return t.value == other.value }

// AtLeast returns true when the tier ranks at or above other.
func (t RiskTier) AtLeast(other RiskTier) bool { return t.rank >= other.rank }

// AllTiers lists every tier in ascending order.
func AllTiers() []RiskTier {
	return []RiskTier{TierPoor, TierFair, TierGood, TierVeryGood, TierExcellent}
}
