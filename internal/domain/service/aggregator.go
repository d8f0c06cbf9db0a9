package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/bibbank/credit-engine/internal/domain/model"
	"github.com/bibbank/credit-engine/internal/domain/policy"
	"github.com/bibbank/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Score aggregator – fan-out scorers, classify, derive the limit
// ---------------------------------------------------------------------------

// EnrichmentBonusMax bounds the external-enrichment contribution.
const EnrichmentBonusMax = 30

// Aggregate fans out the five factor scorers, folds in the enrichment bonus
// and monitoring adjustment, clamps the total to [0, sum of weights], and
// derives the tier and recommended credit limit.
//
// The scorers are pure, so the concurrent evaluation is bit-for-bit
// identical to running them sequentially.
func Aggregate(
	ctx context.Context,
	n model.NormalizedApplicant,
	p policy.ScoringPolicy,
	externalBonus int,
	notes []string,
	now time.Time,
) model.ScoreResult {
	var breakdown model.CategoryBreakdown

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { breakdown.Capacity = ScoreCapacity(n, p); return nil })
	g.Go(func() error { breakdown.Character = ScoreCharacter(n, p); return nil })
	g.Go(func() error { breakdown.Capital = ScoreCapital(n, p); return nil })
	g.Go(func() error { breakdown.Collateral = ScoreCollateral(n, p); return nil })
	g.Go(func() error { breakdown.Conditions = ScoreConditions(n, p); return nil })
	_ = g.Wait() // scorers never return errors

	if externalBonus < 0 {
		externalBonus = 0
	}
	if externalBonus > EnrichmentBonusMax {
		externalBonus = EnrichmentBonusMax
	}
	breakdown.External = externalBonus
	breakdown.Monitoring = monitoringAdjustment(n, p)

	total := breakdown.Sum()
	if total < 0 {
		total = 0
	}
	if total > p.MaxTotalScore {
		total = p.MaxTotalScore
	}

	tier := p.Thresholds.Classify(total)

	notes = append(notes, fmt.Sprintf("macro adjustment factor %.2f", p.MacroFactor()))

	return model.ScoreResult{
		TotalScore:       total,
		Tier:             tier,
		Breakdown:        breakdown,
		RecommendedLimit: recommendedLimit(n, p, tier, breakdown.Monitoring),
		Notes:            notes,
		Timestamp:        now,
	}
}

// monitoringAdjustment derives a −10..+10 adjustment from the recent on-time
// payment rate. Without payment history the utility/rent rates stand in as a
// proxy.
func monitoringAdjustment(n model.NormalizedApplicant, p policy.ScoringPolicy) int {
	if !p.EnableMonitoring {
		return 0
	}

	rate, ok := n.RecentOnTimeRate(p.MonitoringWindow)
	if !ok {
		rate = (n.UtilityPaymentRate + n.RentPaymentRate) / 2
	}

	adj := int(math.Round((rate - 0.9) * 100))
	if adj < -10 {
		return -10
	}
	if adj > 10 {
		return 10
	}
	return adj
}

// recommendedLimit derives the credit limit. The secured-card path clamps
// the deposit; the unsecured path reads the tier table and scales by the
// monitoring adjustment when monitoring is enabled. The derivation runs in
// the reference currency, but the reported limit is converted back to the
// applicant's input currency so it lines up with the amounts they submitted.
func recommendedLimit(
	n model.NormalizedApplicant,
	p policy.ScoringPolicy,
	tier valueobject.RiskTier,
	monitoringAdj int,
) decimal.Decimal {
	var limit decimal.Decimal
	if p.IsSecuredCard {
		limit = n.CollateralValue
		if limit.LessThan(p.SecuredCard.MinDeposit) {
			limit = p.SecuredCard.MinDeposit
		}
		if limit.GreaterThan(p.SecuredCard.MaxDeposit) {
			limit = p.SecuredCard.MaxDeposit
		}
	} else {
		limit = p.CreditLimits.ForTier(tier)
		if p.EnableMonitoring && monitoringAdj != 0 {
			scale := decimal.NewFromFloat(1 + float64(monitoringAdj)/100)
			limit = limit.Mul(scale)
		}
	}
	return limit.Mul(decimal.NewFromFloat(n.CurrencyRate)).Round(2)
}
