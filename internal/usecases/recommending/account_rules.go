package recommending

import (
	"fmt"

	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

// Account rules run once per run as a dedicated pass over the full entity
// set, so "fire only for the canonical entity" bookkeeping is unnecessary.

// DailyCapApproachRule alerts when average daily spend approaches, but has
// not yet breached, the configured daily cap.
type DailyCapApproachRule struct{}

func (r *DailyCapApproachRule) ID() string   { return "account_daily_cap_approach" }
func (r *DailyCapApproachRule) Name() string { return "Daily spend cap approach alert" }

const capApproachShare = 0.85

func (r *DailyCapApproachRule) EvaluateAccount(run *RunContext) (*domain.Recommendation, error) {
	if run.Policy.DailySpendCap == 0 {
		return nil, nil
	}

	var cost7 float64
	for _, ctx := range run.Contexts {
		if ctx.Entity.Type != domain.EntityTypeCampaign || ctx.Snapshot == nil {
			continue
		}
		cost7 += ctx.Snapshot.Window(domain.Window7).Cost
	}

	avgDaily := cost7 / 7
	if avgDaily < capApproachShare*run.Policy.DailySpendCap || avgDaily >= run.Policy.DailySpendCap {
		return nil, nil
	}

	return &domain.Recommendation{
		ActionType: domain.ActionReview,
		RiskTier:   domain.RiskTierLow,
		Confidence: 0.9,
		Priority:   15,
		Rationale: fmt.Sprintf(
			"Average daily spend (%.2f) has reached %.0f%% of the daily cap (%.2f); review budgets before the cap is hit",
			avgDaily, (avgDaily/run.Policy.DailySpendCap)*100, run.Policy.DailySpendCap,
		),
		Evidence: map[string]any{
			"avg_daily_spend": avgDaily,
			"daily_spend_cap": run.Policy.DailySpendCap,
		},
		GuardrailRefs: []string{"daily_spend_cap"},
	}, nil
}

// BudgetRebalanceRule proposes shifting budget away from the worst-performing
// eligible campaign when the spread to the best performer exceeds a ratio
// threshold.
type BudgetRebalanceRule struct{}

func (r *BudgetRebalanceRule) ID() string   { return "account_budget_rebalance" }
func (r *BudgetRebalanceRule) Name() string { return "Budget rebalance on performance spread" }

const rebalanceSpreadThreshold = 3.0

func (r *BudgetRebalanceRule) EvaluateAccount(run *RunContext) (*domain.Recommendation, error) {
	var best, worst *Context
	var bestROAS, worstROAS float64

	for _, ctx := range run.Contexts {
		if ctx.Entity.Type != domain.EntityTypeCampaign || ctx.Snapshot == nil || ctx.Snapshot.LowData {
			continue
		}
		w30 := ctx.Snapshot.Window(domain.Window30)
		if w30.Clicks < run.Engine.BudgetMinClicks7d || w30.ROAS == 0 {
			continue
		}

		if best == nil || w30.ROAS > bestROAS {
			best, bestROAS = ctx, w30.ROAS
		}
		if worst == nil || w30.ROAS < worstROAS {
			worst, worstROAS = ctx, w30.ROAS
		}
	}

	if best == nil || worst == nil || best.Entity.ID == worst.Entity.ID {
		return nil, nil
	}
	if ratioOrZero(bestROAS, worstROAS) <= rebalanceSpreadThreshold {
		return nil, nil
	}

	pct := -changePctFor(run.Policy.RiskTolerance)
	current := worst.Snapshot.DailyBudget

	return &domain.Recommendation{
		EntityID:         worst.Entity.ID,
		EntityType:       worst.Entity.Type,
		ActionType:       domain.ActionBudgetRebalance,
		RiskTier:         domain.RiskTierMed,
		Confidence:       0.7,
		CurrentValue:     current,
		RecommendedValue: current * (1 + pct),
		ChangePct:        &pct,
		Priority:         25,
		Rationale: fmt.Sprintf(
			"30-day ROAS spread between the best (%s, %.2f) and worst (%s, %.2f) campaigns exceeds %.0fx; shift budget away from the worst performer",
			best.Entity.ID, bestROAS, worst.Entity.ID, worstROAS, rebalanceSpreadThreshold,
		),
		Evidence: map[string]any{
			"best_entity_id":  best.Entity.ID,
			"best_roas_30d":   bestROAS,
			"worst_entity_id": worst.Entity.ID,
			"worst_roas_30d":  worstROAS,
		},
		GuardrailRefs: []string{"change_magnitude_cap"},
	}, nil
}

// LowDataCoverageRule emits one account-wide warning per run when more than
// half of the campaigns are flagged low-data.
type LowDataCoverageRule struct{}

func (r *LowDataCoverageRule) ID() string   { return "account_low_data_coverage" }
func (r *LowDataCoverageRule) Name() string { return "Account-wide low data warning" }

func (r *LowDataCoverageRule) EvaluateAccount(run *RunContext) (*domain.Recommendation, error) {
	var campaigns, lowData int
	for _, ctx := range run.Contexts {
		if ctx.Entity.Type != domain.EntityTypeCampaign || ctx.Snapshot == nil {
			continue
		}
		campaigns++
		if ctx.Snapshot.LowData {
			lowData++
		}
	}

	if campaigns == 0 || lowData*2 <= campaigns {
		return nil, nil
	}

	return &domain.Recommendation{
		ActionType: domain.ActionReview,
		RiskTier:   domain.RiskTierLow,
		Confidence: 0.95,
		Priority:   60,
		Rationale: fmt.Sprintf(
			"%d of %d campaigns are flagged low-data; account-level optimization is unreliable until volume recovers",
			lowData, campaigns,
		),
		Evidence: map[string]any{
			"campaigns":          campaigns,
			"low_data_campaigns": lowData,
		},
		DiagnosisCode: domain.DiagnosisLowData,
	}, nil
}
