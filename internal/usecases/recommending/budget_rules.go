package recommending

import (
	"fmt"
	"math"

	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

// ROAS threshold bands shared by the budget family.
const (
	budgetUpperBand     = 1.15
	budgetLowerBand     = 0.75
	budgetEmergencyBand = 0.50
)

// BudgetIncreaseRule raises a campaign budget when the 7-day ROAS comfortably
// beats the target and the entity has enough stable volume.
type BudgetIncreaseRule struct{}

func (r *BudgetIncreaseRule) ID() string   { return "budget_increase_on_strong_roas" }
func (r *BudgetIncreaseRule) Name() string { return "Budget increase on strong ROAS" }

func (r *BudgetIncreaseRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	ratio, ok := budgetROASRatio(ctx)
	if !ok || ratio <= budgetUpperBand {
		return nil, nil
	}

	if volatile(ctx) {
		return budgetHold(ctx, ratio), nil
	}

	pct := changePctFor(ctx.Policy.RiskTolerance)
	return budgetChange(ctx, domain.ActionBudgetIncrease, pct, domain.RiskTierLow, 20,
		fmt.Sprintf("7-day ROAS is %.2fx the target; budget can be raised by %.0f%%", ratio, pct*100),
		ratio,
	), nil
}

// BudgetDecreaseRule trims a campaign budget when the 7-day ROAS falls below
// the lower band but above the emergency band.
type BudgetDecreaseRule struct{}

func (r *BudgetDecreaseRule) ID() string   { return "budget_decrease_on_weak_roas" }
func (r *BudgetDecreaseRule) Name() string { return "Budget decrease on weak ROAS" }

func (r *BudgetDecreaseRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	ratio, ok := budgetROASRatio(ctx)
	if !ok || ratio >= budgetLowerBand {
		return nil, nil
	}

	if volatile(ctx) {
		return budgetHold(ctx, ratio), nil
	}

	pct := -changePctFor(ctx.Policy.RiskTolerance)
	return budgetChange(ctx, domain.ActionBudgetDecrease, pct, domain.RiskTierMed, 20,
		fmt.Sprintf("7-day ROAS is only %.2fx the target; budget should be trimmed by %.0f%%", ratio, math.Abs(pct)*100),
		ratio,
	), nil
}

// EmergencyBudgetCutRule fires on a severe ROAS miss. The magnitude is halved
// relative to the normal band: high-risk triggers act more cautiously, not
// less.
type EmergencyBudgetCutRule struct{}

func (r *EmergencyBudgetCutRule) ID() string   { return "budget_emergency_cut" }
func (r *EmergencyBudgetCutRule) Name() string { return "Emergency budget cut on severe ROAS miss" }

func (r *EmergencyBudgetCutRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	ratio, ok := budgetROASRatio(ctx)
	if !ok || ratio >= budgetEmergencyBand {
		return nil, nil
	}

	pct := -changePctFor(ctx.Policy.RiskTolerance) / 2
	rec := budgetChange(ctx, domain.ActionBudgetDecrease, pct, domain.RiskTierHigh, 10,
		fmt.Sprintf("7-day ROAS collapsed to %.2fx the target; applying a reduced emergency cut of %.1f%%", ratio, math.Abs(pct)*100),
		ratio,
	)

	if insight, found := ctx.Diagnosis(domain.DiagnosisCostSpike); found {
		rec.DiagnosisCode = insight.Code
		rec.DiagnosisConfidence = insight.Confidence
	}

	return rec, nil
}

// PacingCutRule cuts the budget of the single highest-spend campaign when the
// account is pacing over its monthly cap. Spend ties break on the lowest
// entity id so the target is stable across runs.
type PacingCutRule struct{}

func (r *PacingCutRule) ID() string   { return "pacing_cut_top_spender" }
func (r *PacingCutRule) Name() string { return "Pacing cut on top spender" }

func (r *PacingCutRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	if !ctx.HasAccountDiagnosis(domain.DiagnosisPacingOverCap) {
		return nil, nil
	}
	if ctx.Entity.Type != domain.EntityTypeCampaign || ctx.Snapshot == nil {
		return nil, nil
	}

	topID, topSpend := "", -1.0
	for _, entity := range ctx.AllEntities {
		if entity.Type != domain.EntityTypeCampaign {
			continue
		}
		snapshot := ctx.AllSnapshots[entity.ID]
		if snapshot == nil {
			continue
		}
		spend := snapshot.Window(domain.Window7).Cost
		if spend > topSpend || (spend == topSpend && entity.ID < topID) {
			topID, topSpend = entity.ID, spend
		}
	}

	if topID != ctx.Entity.ID {
		return nil, nil
	}

	pct := -(changePctFor(ctx.Policy.RiskTolerance) + 0.05)
	change := pct * ctx.Snapshot.DailyBudget

	return &domain.Recommendation{
		ActionType:       domain.ActionPacingCut,
		RiskTier:         domain.RiskTierMed,
		Confidence:       0.85,
		CurrentValue:     ctx.Snapshot.DailyBudget,
		RecommendedValue: ctx.Snapshot.DailyBudget + change,
		ChangePct:        &pct,
		Priority:         5,
		Rationale: fmt.Sprintf(
			"Account is pacing over its monthly cap; cutting the highest-spend campaign (%.2f over 7 days) by %.0f%%",
			topSpend, math.Abs(pct)*100,
		),
		Evidence: map[string]any{
			"spend_7d": topSpend,
		},
		GuardrailRefs: []string{"monthly_pacing"},
		DiagnosisCode: domain.DiagnosisPacingOverCap,
	}, nil
}

// budgetROASRatio computes the 7-day ROAS over target, reporting false when
// the rule's volume gate or the target itself is missing.
func budgetROASRatio(ctx *Context) (float64, bool) {
	if ctx.Snapshot == nil || ctx.Entity.Type != domain.EntityTypeCampaign {
		return 0, false
	}
	if ctx.Policy.TargetROAS == 0 {
		return 0, false
	}

	w7 := ctx.Snapshot.Window(domain.Window7)
	if w7.Clicks < ctx.Engine.BudgetMinClicks7d {
		return 0, false
	}

	return ratioOrZero(w7.ROAS, ctx.Policy.TargetROAS), true
}

func volatile(ctx *Context) bool {
	return ctx.Snapshot.CostCV14 > ctx.Engine.StabilityCVCeiling
}

func budgetHold(ctx *Context, ratio float64) *domain.Recommendation {
	return &domain.Recommendation{
		ActionType:   domain.ActionBudgetHold,
		RiskTier:     domain.RiskTierLow,
		Confidence:   0.6,
		CurrentValue: ctx.Snapshot.DailyBudget,
		Priority:     30,
		Rationale: fmt.Sprintf(
			"7-day ROAS is %.2fx the target but 14-day cost variation (CV %.2f) exceeds the stability ceiling; holding the budget",
			ratio, ctx.Snapshot.CostCV14,
		),
		Evidence: map[string]any{
			"roas_ratio_7d": ratio,
			"cost_cv_14d":   ctx.Snapshot.CostCV14,
		},
		GuardrailRefs: []string{"stability"},
	}
}

func budgetChange(ctx *Context, action domain.ActionType, pct float64, tier domain.RiskTier, priority int, rationale string, ratio float64) *domain.Recommendation {
	current := ctx.Snapshot.DailyBudget
	confidence := math.Min(0.95, 0.6+math.Abs(ratio-1)/2)

	return &domain.Recommendation{
		ActionType:       action,
		RiskTier:         tier,
		Confidence:       confidence,
		CurrentValue:     current,
		RecommendedValue: current * (1 + pct),
		ChangePct:        &pct,
		Priority:         priority,
		Rationale:        rationale,
		Evidence: map[string]any{
			"roas_ratio_7d": ratio,
			"clicks_7d":     ctx.Snapshot.Window(domain.Window7).Clicks,
			"cost_cv_14d":   ctx.Snapshot.CostCV14,
		},
		GuardrailRefs: []string{"change_magnitude_cap", "daily_spend_cap"},
	}
}
