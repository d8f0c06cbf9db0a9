package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Offer generator – price rate, fees, APR, amortization preview
// ---------------------------------------------------------------------------

// GenerateOffers builds the loan offers for a non-denied decision: always a
// primary offer, plus conditional secured-alternative, extended-term, and
// co-applicant variants. Between one and four offers result; a denied
// decision yields none.
func GenerateOffers(
	decision model.LendingDecision,
	score model.ScoreResult,
	n model.NormalizedApplicant,
	p policy.ScoringPolicy,
	now time.Time,
) []model.LoanOffer {
	if decision.IsDenied() || decision.Status.Equal(valueobject.DecisionReview) {
		return nil
	}
	if decision.ApprovedAmount.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	term := boundedTerm(n.TermMonths, p)
	primarySecured := p.IsSecuredCard ||
		(score.TotalScore < p.MinScoreUnsecured && n.HasCollateral())

	offers := []model.LoanOffer{
		buildOffer(offerSpec{
			offerType: valueobject.OfferPrimary,
			amount:    decision.ApprovedAmount,
			term:      term,
			secured:   primarySecured,
			tier:      score.Tier,
			documents: requiredDocuments(decision, p),
		}, p, now),
	}

	// Secured alternative: collateral exists and the primary was not a clean
	// unsecured approval.
	if n.HasCollateral() && !primarySecured && !decision.Status.Equal(valueobject.DecisionApproved) {
		amount := decision.ApprovedAmount
		maxSecured := n.CollateralValue.Mul(decimal.NewFromFloat(p.MaxLTV)).Round(2)
		if amount.GreaterThan(maxSecured) {
			amount = maxSecured
		}
		if amount.GreaterThan(decimal.Zero) {
			offers = append(offers, buildOffer(offerSpec{
				offerType:  valueobject.OfferSecuredAlternative,
				amount:     amount,
				term:       term,
				secured:    true,
				tier:       score.Tier,
				conditions: []string{"collateral lien required"},
				documents:  append(requiredDocuments(decision, p), "collateral_title"),
			}, p, now))
		}
	}

	// Extended term: only when the loan type leaves term headroom.
	if maxTerm := p.LoanTypeProfileFor(p.LoanType).MaxTermMonths; maxTerm > 0 {
		extended := term + term/2
		if extended > maxTerm {
			extended = maxTerm
		}
		if extended > term {
			offers = append(offers, buildOffer(offerSpec{
				offerType: valueobject.OfferExtendedTerm,
				amount:    decision.ApprovedAmount,
				term:      extended,
				secured:   primarySecured,
				tier:      score.Tier,
				documents: requiredDocuments(decision, p),
			}, p, now))
		}
	}

	// Co-applicant variant: small rate concession, no re-score.
	if n.HasCoApplicant {
		offers = append(offers, buildOffer(offerSpec{
			offerType:  valueobject.OfferCoApplicant,
			amount:     decision.ApprovedAmount,
			term:       term,
			secured:    primarySecured,
			tier:       score.Tier,
			rateDelta:  -25,
			conditions: []string{"co-applicant signature required"},
			documents:  append(requiredDocuments(decision, p), "co_applicant_proof_of_income"),
		}, p, now))
	}

	return offers
}

type offerSpec struct {
	offerType  valueobject.OfferType
	amount     decimal.Decimal
	term       int
	secured    bool
	tier       valueobject.RiskTier
	rateDelta  int
	conditions []string
	documents  []string
}

func buildOffer(spec offerSpec, p policy.ScoringPolicy, now time.Time) model.LoanOffer {
	rateBps := priceRate(spec.tier, spec.secured, spec.term, p) + spec.rateDelta
	if rateBps < 0 {
		rateBps = 0
	}
	if rateBps > p.MaxAPRBps {
		rateBps = p.MaxAPRBps
	}

	fees := make([]model.FeeLine, 0, len(p.Fees))
	totalFees := decimal.Zero
	for _, fee := range p.Fees {
		amount := fee.Compute(spec.amount, spec.tier)
		fees = append(fees, model.FeeLine{Name: fee.FeeName(), Amount: amount})
		totalFees = totalFees.Add(amount)
	}

	offer := model.LoanOffer{
		ID:                uuid.New().String(),
		Type:              spec.offerType,
		Amount:            spec.amount,
		TermMonths:        spec.term,
		RateBps:           rateBps,
		Fees:              fees,
		ExpiresAt:         now.Add(p.OfferValidity),
		Conditions:        spec.conditions,
		RequiredDocuments: spec.documents,
	}

	if spec.term > 0 {
		offer.APRPercent = SolveAPR(spec.amount, totalFees, rateBps, spec.term)
		offer.SchedulePreview = model.PreviewAmortization(
			spec.amount, rateBps, spec.term, now, p.PreviewPeriods)
	} else {
		// Revolving products carry the nominal rate as APR and no schedule.
		offer.APRPercent = float64(rateBps) / 100.0
	}

	return offer
}

// priceRate reads the tier base rate and accumulates every term adjustment
// whose threshold the term crosses, capped at the policy APR ceiling.
func priceRate(tier valueobject.RiskTier, secured bool, term int, p policy.ScoringPolicy) int {
	rates := p.Rates.Unsecured
	if secured {
		rates = p.Rates.Secured
	}
	bps := rates.ForTier(tier)

	for _, adj := range p.TermAdjustments {
		if term >= adj.MinTermMonths {
			bps += adj.AdjustmentBps
		}
	}

	if bps > p.MaxAPRBps {
		bps = p.MaxAPRBps
	}
	return bps
}

func boundedTerm(term int, p policy.ScoringPolicy) int {
	if p.LoanType.Equal(valueobject.LoanTypeCreditCard) {
		return 0
	}
	maxTerm := p.LoanTypeProfileFor(p.LoanType).MaxTermMonths
	if maxTerm > 0 && term > maxTerm {
		return maxTerm
	}
	if term <= 0 {
		return 36
	}
	return term
}

func requiredDocuments(decision model.LendingDecision, p policy.ScoringPolicy) []string {
	docs := []string{"government_id", "proof_of_income"}
	if p.LoanType.Equal(valueobject.LoanTypeMortgage) {
		docs = append(docs, "property_deed")
	}
	for _, v := range decision.RequiredVerifications {
		if v == model.VerifyCollateralAppraise {
			docs = append(docs, "collateral_appraisal_report")
		}
	}
	return docs
}
