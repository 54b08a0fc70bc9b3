package guarding

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

// Check names, recorded in the order they were attempted.
const (
	CheckLowData        = "low_data"
	CheckLowConversions = "low_conversions"
	CheckProtected      = "protected_entity"
	CheckConfidence     = "confidence_threshold"
	CheckCooldown       = "cooldown"
	CheckLeverExclusive = "one_lever_exclusivity"
	CheckChangeCap      = "change_magnitude_cap"
	CheckDailyCap       = "daily_spend_cap"
	CheckMonthlyPacing  = "monthly_pacing"
	CheckAutomationMode = "automation_mode"
)

// Block reasons carried on the recommendation. Machine-readable; the
// human-readable rationale stays on the recommendation itself.
const (
	ReasonLowData         = "low_data"
	ReasonLowConversions  = "low_conversions"
	ReasonProtectedEntity = "protected_entity"
	ReasonLowConfidence   = "low_confidence"
	ReasonCooldownActive  = "cooldown_active"
	ReasonLeverConflict   = "lever_conflict"
	ReasonChangeCap       = "change_cap_exceeded"
	ReasonDailyCap        = "daily_cap_exceeded"
	ReasonMonthlyPacing   = "monthly_pacing_over_cap"
	ReasonAutomationMode  = "automation_mode_block"
)

// Verdict is the typed allow/deny outcome of the guardrail chain. Guardrail
// outcomes are data, never errors.
type Verdict struct {
	Allowed         bool
	Reason          string
	ChecksAttempted []string
}

// Input is everything one evaluation needs. It is assembled by the caller so
// the evaluator itself performs no I/O; the executor rebuilds it with a fresh
// ledger slice at execution time.
type Input struct {
	Entity        domain.Entity
	Snapshot      *domain.FeatureSnapshot
	Policy        *domain.AccountPolicy
	RecentChanges []*domain.ChangeRecord
	PacingOverCap bool
	Date          time.Time
}

// Evaluator applies the ordered, fail-fast guardrail chain to a proposed
// recommendation. The first failing check sets the reason; the attempted
// checks up to and including the failure are always recorded.
type Evaluator struct {
	engine config.Engine
}

func NewEvaluator(engine config.Engine) *Evaluator {
	return &Evaluator{engine: engine}
}

type check struct {
	name string
	run  func(e *Evaluator, rec *domain.Recommendation, in *Input) (blocked bool, reason string)
}

// chain order is part of the contract: earlier checks shadow later ones.
var chain = []check{
	{CheckLowData, (*Evaluator).checkLowData},
	{CheckLowConversions, (*Evaluator).checkLowConversions},
	{CheckProtected, (*Evaluator).checkProtected},
	{CheckConfidence, (*Evaluator).checkConfidence},
	{CheckCooldown, (*Evaluator).checkCooldown},
	{CheckLeverExclusive, (*Evaluator).checkLeverExclusivity},
	{CheckChangeCap, (*Evaluator).checkChangeCap},
	{CheckDailyCap, (*Evaluator).checkDailyCap},
	{CheckMonthlyPacing, (*Evaluator).checkMonthlyPacing},
	{CheckAutomationMode, (*Evaluator).checkAutomationMode},
}

// Evaluate runs the chain and returns the verdict without touching the
// recommendation.
func (e *Evaluator) Evaluate(rec *domain.Recommendation, in *Input) Verdict {
	verdict := Verdict{Allowed: true, ChecksAttempted: make([]string, 0, len(chain))}

	for _, c := range chain {
		verdict.ChecksAttempted = append(verdict.ChecksAttempted, c.name)
		if blocked, reason := c.run(e, rec, in); blocked {
			verdict.Allowed = false
			verdict.Reason = reason
			return verdict
		}
	}

	return verdict
}

// Apply runs the chain and annotates the recommendation in place. Blocked
// recommendations stay in the pipeline so the block itself is auditable.
func (e *Evaluator) Apply(rec *domain.Recommendation, in *Input) Verdict {
	verdict := e.Evaluate(rec, in)
	rec.Blocked = !verdict.Allowed
	rec.BlockReason = verdict.Reason
	rec.ChecksAttempted = verdict.ChecksAttempted
	return verdict
}

// 1. Insufficient 7-day click volume blocks any action on the entity.
func (e *Evaluator) checkLowData(rec *domain.Recommendation, in *Input) (bool, string) {
	if in.Snapshot == nil {
		return false, ""
	}
	if in.Snapshot.Window(domain.Window7).Clicks < e.engine.MinClicks7d {
		return true, ReasonLowData
	}
	return false, ""
}

// 2. Bid/target changes additionally need 30-day conversion volume.
func (e *Evaluator) checkLowConversions(rec *domain.Recommendation, in *Input) (bool, string) {
	if rec.Lever() != domain.LeverBid || in.Snapshot == nil {
		return false, ""
	}
	if in.Snapshot.Window(domain.Window30).Conversions < e.engine.MinConversions30d {
		return true, ReasonLowConversions
	}
	return false, ""
}

// 3. Explicit protection list, plus a display-name heuristic when brand
// protection is on.
func (e *Evaluator) checkProtected(rec *domain.Recommendation, in *Input) (bool, string) {
	if in.Policy.IsProtected(rec.EntityID) {
		return true, ReasonProtectedEntity
	}
	if in.Policy.BrandProtection && brandLike(in.Entity.Name) {
		return true, ReasonProtectedEntity
	}
	return false, ""
}

func brandLike(name string) bool {
	lowered := strings.ToLower(name)
	return strings.Contains(lowered, "brand") || strings.Contains(lowered, "trademark")
}

// 4. Confidence below the configured minimum.
func (e *Evaluator) checkConfidence(rec *domain.Recommendation, in *Input) (bool, string) {
	minConfidence := in.Policy.MinConfidence
	if minConfidence == 0 {
		minConfidence = e.engine.DefaultMinConfidence
	}
	if rec.Confidence < minConfidence {
		return true, ReasonLowConfidence
	}
	return false, ""
}

// 5. A ledger entry for the same (entity, lever) within the cooldown window.
func (e *Evaluator) checkCooldown(rec *domain.Recommendation, in *Input) (bool, string) {
	lever := rec.Lever()
	if lever == domain.LeverOther {
		return false, ""
	}
	if hasRecent(in.RecentChanges, rec.EntityID, lever, in.Date, e.engine.CooldownDays) {
		return true, ReasonCooldownActive
	}
	return false, ""
}

// 6. A ledger entry for the opposite lever within the cooldown window.
func (e *Evaluator) checkLeverExclusivity(rec *domain.Recommendation, in *Input) (bool, string) {
	lever := rec.Lever()
	if lever == domain.LeverOther {
		return false, ""
	}
	opposite := domain.OppositeLever(lever)
	if hasRecent(in.RecentChanges, rec.EntityID, opposite, in.Date, e.engine.CooldownDays) {
		return true, ReasonLeverConflict
	}
	return false, ""
}

func hasRecent(changes []*domain.ChangeRecord, entityID string, lever domain.Lever, ref time.Time, days int) bool {
	for _, change := range changes {
		if change.EntityID == entityID && change.Lever == lever && change.WithinDays(ref, days) {
			return true
		}
	}
	return false
}

// 7. |change_pct| against the absolute ceiling and the risk-tolerance tier.
func (e *Evaluator) checkChangeCap(rec *domain.Recommendation, in *Input) (bool, string) {
	if rec.Lever() == domain.LeverOther || rec.ChangePct == nil {
		return false, ""
	}

	cap := math.Min(e.engine.AbsoluteChangeCap, toleranceCap(in.Policy.RiskTolerance))
	if math.Abs(*rec.ChangePct) > cap {
		return true, ReasonChangeCap
	}
	return false, ""
}

func toleranceCap(tolerance domain.RiskTolerance) float64 {
	switch tolerance {
	case domain.RiskConservative:
		return 0.10
	case domain.RiskBalanced:
		return 0.15
	default:
		return 0.20
	}
}

// 8. A proposed budget increase must not push past the daily cap.
func (e *Evaluator) checkDailyCap(rec *domain.Recommendation, in *Input) (bool, string) {
	if rec.ActionType != domain.ActionBudgetIncrease || in.Policy.DailySpendCap == 0 {
		return false, ""
	}
	if rec.RecommendedValue > in.Policy.DailySpendCap {
		return true, ReasonDailyCap
	}
	return false, ""
}

// 9. No expansion while the account paces over its monthly cap.
func (e *Evaluator) checkMonthlyPacing(rec *domain.Recommendation, in *Input) (bool, string) {
	if rec.ActionType != domain.ActionBudgetIncrease {
		return false, ""
	}
	if in.PacingOverCap {
		return true, ReasonMonthlyPacing
	}
	return false, ""
}

// 10. Automation-mode gating. suggest never blocks here; it only limits
// downstream auto-execution.
func (e *Evaluator) checkAutomationMode(rec *domain.Recommendation, in *Input) (bool, string) {
	switch in.Policy.Mode {
	case domain.ModeInsights:
		return true, ReasonAutomationMode
	case domain.ModeAutoLowRisk:
		if rec.RiskTier != domain.RiskTierLow {
			return true, ReasonAutomationMode
		}
	case domain.ModeAutoExpanded:
		if rec.RiskTier == domain.RiskTierHigh {
			return true, ReasonAutomationMode
		}
	}
	return false, ""
}

// Describe renders a verdict for logs.
func Describe(v Verdict) string {
	if v.Allowed {
		return fmt.Sprintf("allowed after %d checks", len(v.ChecksAttempted))
	}
	return fmt.Sprintf("blocked by %s after %d checks", v.Reason, len(v.ChecksAttempted))
}
