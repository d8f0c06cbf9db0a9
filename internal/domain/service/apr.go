package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// APR solver – iterative periodic-rate refinement
// ---------------------------------------------------------------------------

const (
	aprMaxIterations = 20
	// aprTolerance is the residual balance, in currency units, the amortized
	// loan must converge to at the final period.
	aprTolerance = 0.01
)

// SolveAPR computes the truth-in-lending APR for a loan whose fees are
// financed out of the principal. The fixed payment is priced at the nominal
// rate on the full principal; the APR is the annualized periodic rate at
// which those payments amortize the fee-reduced amount to zero.
//
// The periodic rate is refined by Newton-Raphson until the final-period
// balance is within 0.01 currency units of zero, in at most 20 iterations.
// This deliberately differs from the cheap rate+fees/principal estimate: the
// iterative solve reflects the payment timing, so the APR is always at or
// above the nominal rate when fees are positive.
func SolveAPR(principal, fees decimal.Decimal, nominalRateBps, termMonths int) float64 {
	nominalAPR := float64(nominalRateBps) / 100.0
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nominalAPR
	}

	financed := principal.Sub(fees)
	if financed.LessThanOrEqual(decimal.Zero) || fees.LessThanOrEqual(decimal.Zero) {
		// No fees to spread (or degenerate fee load): APR equals nominal.
		return nominalAPR
	}

	payment := model.MonthlyPayment(principal, nominalRateBps, termMonths).InexactFloat64()
	target := financed.InexactFloat64()

	// Start at the nominal monthly rate; fees only push the rate upward.
	start := float64(nominalRateBps) / 10_000.0 / 12.0
	if start <= 0 {
		start = 1e-6
	}
	rate := solvePeriodicRate(target, payment, start, termMonths)

	apr := rate * 12 * 100
	if apr < nominalAPR {
		apr = nominalAPR
	}
	return math.Round(apr*100) / 100
}

// solvePeriodicRate refines the monthly rate by Newton-Raphson until the
// amortized balance at the final period is within aprTolerance of zero.
func solvePeriodicRate(target, payment, start float64, termMonths int) float64 {
	n := float64(termMonths)
	rate := start

	for i := 0; i < aprMaxIterations; i++ {
		if math.Abs(residualBalance(target, payment, rate, termMonths)) <= aprTolerance {
			break
		}

		pow := math.Pow(1+rate, -n)
		pv := payment * (1 - pow) / rate

		// d(pv)/d(rate)
		deriv := payment * (n*pow/(1+rate)*rate - (1 - pow)) / (rate * rate)
		if deriv == 0 {
			break
		}
		next := rate - (pv-target)/deriv
		if next <= 0 {
			next = rate / 2
		}
		rate = next
	}

	return rate
}

// residualBalance amortizes the financed amount at the candidate periodic
// rate and returns the balance left after the final payment.
func residualBalance(financed, payment, rate float64, termMonths int) float64 {
	balance := financed
	for i := 0; i < termMonths; i++ {
		balance = balance*(1+rate) - payment
	}
	return balance
}
