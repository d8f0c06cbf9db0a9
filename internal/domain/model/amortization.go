package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationEntry is an immutable value object representing one period in an
// amortization schedule.
type AmortizationEntry struct {
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Period           int             `json:"period"`
}

// MonthlyPayment computes the fixed payment for a standard amortized loan.
//
//	monthlyRate = annualRateBps / 10_000 / 12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
func MonthlyPayment(principal decimal.Decimal, annualRateBps, termMonths int) decimal.Decimal {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	monthlyRate := float64(annualRateBps) / 10_000.0 / 12.0
	if monthlyRate == 0 {
		// Zero-interest: even split.
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}

	factor := math.Pow(1+monthlyRate, float64(termMonths))
	paymentFloat := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(paymentFloat).Round(2)
}

// GenerateAmortizationSchedule computes a standard fixed-payment amortization
// schedule. The float64 power calculation determines the payment; all
// monetary arithmetic stays in decimal.
func GenerateAmortizationSchedule(
	principal decimal.Decimal,
	annualRateBps int,
	termMonths int,
	startDate time.Time,
) []AmortizationEntry {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	monthlyPayment := MonthlyPayment(principal, annualRateBps, termMonths)
	monthlyRateDec := decimal.NewFromFloat(float64(annualRateBps) / 10_000.0 / 12.0)

	schedule := make([]AmortizationEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		dueDate := startDate.AddDate(0, period, 0)

		interest := remaining.Mul(monthlyRateDec).Round(2)
		principalPart := monthlyPayment.Sub(interest)

		// Last period: adjust for rounding so balance reaches exactly zero.
		if period == termMonths {
			principalPart = remaining
			interest = remaining.Mul(monthlyRateDec).Round(2)
			monthlyPayment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          dueDate,
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}

// PreviewAmortization returns the first maxPeriods entries of the schedule so
// offer payloads stay bounded regardless of term length.
func PreviewAmortization(
	principal decimal.Decimal,
	annualRateBps int,
	termMonths int,
	startDate time.Time,
	maxPeriods int,
) []AmortizationEntry {
	schedule := GenerateAmortizationSchedule(principal, annualRateBps, termMonths, startDate)
	if maxPeriods > 0 && len(schedule) > maxPeriods {
		schedule = schedule[:maxPeriods]
	}
	return schedule
}
