package domain

// AutomationMode controls how much autonomy the optimizer has for an account.
type AutomationMode string

const (
	// ModeInsights surfaces diagnoses only; every action is blocked.
	ModeInsights AutomationMode = "insights"
	// ModeSuggest produces recommendations but never auto-executes.
	ModeSuggest AutomationMode = "suggest"
	// ModeAutoLowRisk auto-executes low-risk actions only.
	ModeAutoLowRisk AutomationMode = "auto_low_risk"
	// ModeAutoExpanded auto-executes low- and medium-risk actions.
	ModeAutoExpanded AutomationMode = "auto_expanded"
)

// RiskTolerance selects how aggressive proposed change magnitudes may be.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskBalanced     RiskTolerance = "balanced"
	RiskAggressive   RiskTolerance = "aggressive"
)

// AccountPolicy is the per-account optimization policy. It is loaded and
// validated outside this core; the core assumes well-formed values.
type AccountPolicy struct {
	AccountID          string         `json:"account_id"`
	Mode               AutomationMode `json:"mode"`
	RiskTolerance      RiskTolerance  `json:"risk_tolerance"`
	TargetROAS         float64        `json:"target_roas"`
	TargetCPA          float64        `json:"target_cpa"`
	DailySpendCap      float64        `json:"daily_spend_cap"`
	MonthlySpendCap    float64        `json:"monthly_spend_cap"`
	ProtectedEntityIDs []string       `json:"protected_entity_ids"`
	BrandProtection    bool           `json:"brand_protection"`
	MinConfidence      float64        `json:"min_confidence"`
	Currency           string         `json:"currency"`
	Timezone           string         `json:"timezone"`
	Enabled            bool           `json:"enabled"`
}

// IsProtected reports whether the entity id is on the explicit protection list.
func (p *AccountPolicy) IsProtected(entityID string) bool {
	for _, id := range p.ProtectedEntityIDs {
		if id == entityID {
			return true
		}
	}
	return false
}
