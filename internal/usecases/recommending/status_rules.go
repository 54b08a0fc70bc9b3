package recommending

import (
	"fmt"
	"math"

	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

// PersistentUnderperformanceRule flags (never auto-acts on) campaigns whose
// KPI has severely missed target across both the 14- and 30-day windows.
type PersistentUnderperformanceRule struct{}

func (r *PersistentUnderperformanceRule) ID() string { return "status_persistent_underperformance" }
func (r *PersistentUnderperformanceRule) Name() string {
	return "Persistent underperformance review"
}

func (r *PersistentUnderperformanceRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	if ctx.Snapshot == nil || ctx.Entity.Type != domain.EntityTypeCampaign || ctx.Policy.TargetROAS == 0 {
		return nil, nil
	}

	w14 := ctx.Snapshot.Window(domain.Window14)
	w30 := ctx.Snapshot.Window(domain.Window30)
	if w30.Clicks < ctx.Engine.BudgetMinClicks7d {
		return nil, nil
	}

	ratio14 := ratioOrZero(w14.ROAS, ctx.Policy.TargetROAS)
	ratio30 := ratioOrZero(w30.ROAS, ctx.Policy.TargetROAS)
	if ratio14 >= 0.6 || ratio30 >= 0.6 {
		return nil, nil
	}

	return &domain.Recommendation{
		ActionType: domain.ActionReview,
		RiskTier:   domain.RiskTierLow,
		Confidence: 0.8,
		Priority:   40,
		Rationale: fmt.Sprintf(
			"ROAS has persistently missed target (%.2fx over 14 days, %.2fx over 30 days); manual review needed",
			ratio14, ratio30,
		),
		Evidence: map[string]any{
			"roas_ratio_14d": ratio14,
			"roas_ratio_30d": ratio30,
		},
	}, nil
}

// CTRCollapseRule flags campaigns whose CTR has collapsed both in absolute
// terms and relative to their own 30-day baseline.
type CTRCollapseRule struct{}

func (r *CTRCollapseRule) ID() string   { return "status_ctr_collapse" }
func (r *CTRCollapseRule) Name() string { return "CTR collapse review" }

func (r *CTRCollapseRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	if ctx.Snapshot == nil || ctx.Entity.Type != domain.EntityTypeCampaign {
		return nil, nil
	}

	w7 := ctx.Snapshot.Window(domain.Window7)
	w30 := ctx.Snapshot.Window(domain.Window30)
	if w7.Impressions < 1000 || w30.CTR == 0 {
		return nil, nil
	}

	if w7.CTR >= 0.005 || w7.CTR >= 0.5*w30.CTR {
		return nil, nil
	}

	return &domain.Recommendation{
		ActionType: domain.ActionReview,
		RiskTier:   domain.RiskTierLow,
		Confidence: 0.75,
		Priority:   45,
		Rationale: fmt.Sprintf(
			"7-day CTR (%.2f%%) has collapsed below 0.5%% and below half the 30-day baseline (%.2f%%)",
			w7.CTR*100, w30.CTR*100,
		),
		Evidence: map[string]any{
			"ctr_7d":         w7.CTR,
			"ctr_30d":        w30.CTR,
			"impressions_7d": w7.Impressions,
		},
	}, nil
}

// HealthyNoActionRule makes inaction auditable: when no real diagnosis fired
// for the entity and the KPI sits within a tight band of target, it records an
// explicit "healthy, no action" recommendation.
type HealthyNoActionRule struct{}

func (r *HealthyNoActionRule) ID() string   { return "status_healthy_no_action" }
func (r *HealthyNoActionRule) Name() string { return "Healthy, no action" }

func (r *HealthyNoActionRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	if ctx.Snapshot == nil || ctx.Entity.Type != domain.EntityTypeCampaign || ctx.Policy.TargetROAS == 0 {
		return nil, nil
	}

	// LOW_DATA is a sufficiency flag, not a problem diagnosis.
	for _, insight := range ctx.Insights {
		if !insight.AccountScoped() && insight.Code != domain.DiagnosisLowData {
			return nil, nil
		}
	}

	w7 := ctx.Snapshot.Window(domain.Window7)
	ratio := ratioOrZero(w7.ROAS, ctx.Policy.TargetROAS)
	if math.Abs(ratio-1) > 0.1 {
		return nil, nil
	}

	return &domain.Recommendation{
		ActionType: domain.ActionNoAction,
		RiskTier:   domain.RiskTierLow,
		Confidence: 0.9,
		Priority:   90,
		Rationale: fmt.Sprintf(
			"No diagnosis fired and the 7-day ROAS (%.2fx target) is within the healthy band; no change recommended",
			ratio,
		),
		Evidence: map[string]any{
			"roas_ratio_7d": ratio,
		},
	}, nil
}
