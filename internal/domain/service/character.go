package service

import (
	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
)

// ---------------------------------------------------------------------------
// Character scorer – will the applicant repay?
// ---------------------------------------------------------------------------

// ScoreCharacter evaluates repayment willingness: legal history, residence
// and job stability, financial literacy, and behavioral red flags.
//
// High earners get their financial-literacy contribution compressed to a
// third and the removed points split evenly between residence and job
// stability. This is a deliberate anti-gaming rule inherited from the
// original policy; do not change the split without sign-off from the credit
// policy owner.
func ScoreCharacter(n model.NormalizedApplicant, p policy.ScoringPolicy) int {
	score := 0

	// Any bankruptcy or legal issue zeroes the legal-history component.
	if n.Bankruptcies == 0 && n.LegalIssues == 0 {
		score += 90
	}

	residence := residenceStabilityScore(n.MonthsAtResidence)
	job := jobStabilityScore(n.MonthsEmployed, n.JobChanges)
	literacy := literacyScore(n.FinancialLiteracy)

	if n.MonthlyIncome.GreaterThan(p.HighIncomeThreshold) {
		compressed := literacy / 3
		removed := literacy - compressed
		literacy = compressed
		residence += removed / 2
		job += removed - removed/2
	}

	score += residence + job + literacy

	for _, flag := range n.BehavioralRedFlags {
		score -= p.RedFlagPenalty(flag)
	}

	return clampScore(score, p.Weights.Character)
}

func residenceStabilityScore(months int) int {
	switch {
	case months >= 36:
		return 60
	case months >= 12:
		return 40
	default:
		return 15
	}
}

func jobStabilityScore(monthsEmployed, jobChanges int) int {
	switch {
	case monthsEmployed >= 24 && jobChanges <= 2:
		return 90
	case monthsEmployed >= 12:
		return 60
	default:
		return 25
	}
}

func literacyScore(literacy float64) int {
	switch {
	case literacy >= 0.8:
		return 60
	case literacy >= 0.5:
		return 40
	case literacy >= 0.3:
		return 20
	default:
		return 5
	}
}
