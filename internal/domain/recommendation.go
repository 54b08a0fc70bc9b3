package domain

// ActionType enumerates the changes a rule may propose.
type ActionType string

const (
	ActionBudgetIncrease    ActionType = "budget_increase"
	ActionBudgetDecrease    ActionType = "budget_decrease"
	ActionBudgetHold        ActionType = "budget_hold"
	ActionBudgetRebalance   ActionType = "budget_rebalance"
	ActionPacingCut         ActionType = "pacing_cut"
	ActionBidTargetIncrease ActionType = "bid_target_increase"
	ActionBidTargetDecrease ActionType = "bid_target_decrease"
	ActionBidHold           ActionType = "bid_hold"
	ActionReview            ActionType = "review"
	ActionNoAction          ActionType = "no_action"
)

// Lever classifies an action for conflict grouping and cooldown scoping.
type Lever string

const (
	LeverBudget Lever = "budget"
	LeverBid    Lever = "bid"
	// LeverOther covers reviews, holds and no-ops; actions on this lever never
	// conflict with each other and never enter the cooldown ledger.
	LeverOther Lever = "other"
)

// LeverFor maps an action type onto its control lever.
func LeverFor(action ActionType) Lever {
	switch action {
	case ActionBudgetIncrease, ActionBudgetDecrease, ActionPacingCut, ActionBudgetRebalance:
		return LeverBudget
	case ActionBidTargetIncrease, ActionBidTargetDecrease:
		return LeverBid
	default:
		return LeverOther
	}
}

// OppositeLever returns the other adjustable lever, or LeverOther when the
// lever has no opposite.
func OppositeLever(lever Lever) Lever {
	switch lever {
	case LeverBudget:
		return LeverBid
	case LeverBid:
		return LeverBudget
	default:
		return LeverOther
	}
}

// RiskTier is a coarse classification of an action's potential impact.
type RiskTier string

const (
	RiskTierLow  RiskTier = "low"
	RiskTierMed  RiskTier = "med"
	RiskTierHigh RiskTier = "high"
)

// Recommendation is the central pipeline value: created by a rule, annotated
// by the guardrail evaluator, and kept or dropped by the conflict resolver.
type Recommendation struct {
	ID                  string         `json:"id"`
	RuleID              string         `json:"rule_id"`
	RuleName            string         `json:"rule_name"`
	AccountID           string         `json:"account_id"`
	EntityID            string         `json:"entity_id"`
	EntityType          EntityType     `json:"entity_type"`
	ActionType          ActionType     `json:"action_type"`
	RiskTier            RiskTier       `json:"risk_tier"`
	Confidence          float64        `json:"confidence"`
	CurrentValue        float64        `json:"current_value"`
	RecommendedValue    float64        `json:"recommended_value"`
	ChangePct           *float64       `json:"change_pct,omitempty"`
	Rationale           string         `json:"rationale"`
	Evidence            map[string]any `json:"evidence,omitempty"`
	GuardrailRefs       []string       `json:"guardrail_refs,omitempty"`
	Blocked             bool           `json:"blocked"`
	BlockReason         string         `json:"block_reason,omitempty"`
	ChecksAttempted     []string       `json:"checks_attempted,omitempty"`
	Priority            int            `json:"priority"`
	DiagnosisCode       string         `json:"diagnosis_code,omitempty"`
	DiagnosisConfidence float64        `json:"diagnosis_confidence,omitempty"`
}

// Lever returns the control lever the recommendation acts on.
func (r *Recommendation) Lever() Lever {
	return LeverFor(r.ActionType)
}

// ChangePctValue returns the proposed change percentage, zero when the
// recommendation carries no numeric change.
func (r *Recommendation) ChangePctValue() float64 {
	if r.ChangePct == nil {
		return 0
	}
	return *r.ChangePct
}
