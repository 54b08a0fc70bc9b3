package recommending

import (
	"fmt"
	"math"

	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

// Bid rules read the 30-day window: target changes move slower than budget
// changes and need a stricter conversion gate.
const (
	bidUpperBand = 1.15
	bidLowerBand = 0.75
)

// BidTargetIncreaseRule tightens the tROAS target when delivered ROAS
// comfortably beats it over 30 days.
type BidTargetIncreaseRule struct{}

func (r *BidTargetIncreaseRule) ID() string   { return "bid_target_increase_on_strong_roas" }
func (r *BidTargetIncreaseRule) Name() string { return "Bid target increase on strong ROAS" }

func (r *BidTargetIncreaseRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	ratio, ok := bidROASRatio(ctx)
	if !ok || ratio <= bidUpperBand {
		return nil, nil
	}
	if bidHeld(ctx) {
		return nil, nil
	}

	pct := changePctFor(ctx.Policy.RiskTolerance)
	return bidChange(ctx, domain.ActionBidTargetIncrease, pct,
		fmt.Sprintf("30-day ROAS is %.2fx the target; the tROAS target can be tightened by %.0f%%", ratio, pct*100),
		ratio,
	), nil
}

// BidTargetDecreaseRule relaxes the tROAS target when delivered ROAS misses
// it badly over 30 days, trading efficiency for volume.
type BidTargetDecreaseRule struct{}

func (r *BidTargetDecreaseRule) ID() string   { return "bid_target_decrease_on_weak_roas" }
func (r *BidTargetDecreaseRule) Name() string { return "Bid target decrease on weak ROAS" }

func (r *BidTargetDecreaseRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	ratio, ok := bidROASRatio(ctx)
	if !ok || ratio >= bidLowerBand {
		return nil, nil
	}
	if bidHeld(ctx) {
		return nil, nil
	}

	pct := -changePctFor(ctx.Policy.RiskTolerance)
	return bidChange(ctx, domain.ActionBidTargetDecrease, pct,
		fmt.Sprintf("30-day ROAS is only %.2fx the target; the tROAS target should be relaxed by %.0f%%", ratio, math.Abs(pct)*100),
		ratio,
	), nil
}

// BidHoldRule suppresses any bid change while an efficiency-drop diagnosis is
// open. The hold is itself a recommendation so the inaction is auditable.
type BidHoldRule struct{}

func (r *BidHoldRule) ID() string   { return "bid_hold_on_efficiency_drop" }
func (r *BidHoldRule) Name() string { return "Bid hold on efficiency drop" }

func (r *BidHoldRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	if ctx.Snapshot == nil || ctx.Entity.Type != domain.EntityTypeCampaign {
		return nil, nil
	}

	insight, found := ctx.Diagnosis(domain.DiagnosisCTRDrop)
	if !found {
		insight, found = ctx.Diagnosis(domain.DiagnosisCVRDrop)
	}
	if !found {
		return nil, nil
	}

	return &domain.Recommendation{
		ActionType:   domain.ActionBidHold,
		RiskTier:     domain.RiskTierLow,
		Confidence:   insight.Confidence,
		CurrentValue: ctx.Snapshot.BidTarget,
		Priority:     35,
		Rationale: fmt.Sprintf(
			"An efficiency-drop diagnosis (%s) is open for this campaign; bid changes are held until it is investigated",
			insight.Code,
		),
		Evidence:            insight.Evidence,
		DiagnosisCode:       insight.Code,
		DiagnosisConfidence: insight.Confidence,
	}, nil
}

// bidHeld reports whether an efficiency-drop diagnosis suppresses bid target
// changes for this entity.
func bidHeld(ctx *Context) bool {
	return ctx.HasDiagnosis(domain.DiagnosisCTRDrop) || ctx.HasDiagnosis(domain.DiagnosisCVRDrop)
}

// bidROASRatio computes the 30-day ROAS over target behind the bid family's
// stricter conversion gate.
func bidROASRatio(ctx *Context) (float64, bool) {
	if ctx.Snapshot == nil || ctx.Entity.Type != domain.EntityTypeCampaign {
		return 0, false
	}
	if ctx.Policy.TargetROAS == 0 || ctx.Snapshot.BidTarget == 0 {
		return 0, false
	}

	w30 := ctx.Snapshot.Window(domain.Window30)
	if w30.Conversions < ctx.Engine.MinConversions30d {
		return 0, false
	}

	return ratioOrZero(w30.ROAS, ctx.Policy.TargetROAS), true
}

func bidChange(ctx *Context, action domain.ActionType, pct float64, rationale string, ratio float64) *domain.Recommendation {
	current := ctx.Snapshot.BidTarget
	confidence := math.Min(0.9, 0.55+math.Abs(ratio-1)/2)

	return &domain.Recommendation{
		ActionType:       action,
		RiskTier:         domain.RiskTierMed,
		Confidence:       confidence,
		CurrentValue:     current,
		RecommendedValue: current * (1 + pct),
		ChangePct:        &pct,
		Priority:         30,
		Rationale:        rationale,
		Evidence: map[string]any{
			"roas_ratio_30d": ratio,
			"conversions_30d": ctx.Snapshot.Window(domain.Window30).Conversions,
		},
		GuardrailRefs: []string{"low_conversion", "change_magnitude_cap"},
	}
}
