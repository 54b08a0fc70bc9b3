package domain

import "time"

// ChangeRecord is one executed change, immutable once written. Corrections are
// new records; there is no update or delete path.
type ChangeRecord struct {
	AccountID  string    `json:"account_id"`
	EntityID   string    `json:"entity_id"`
	Lever      Lever     `json:"lever"`
	ChangeDate time.Time `json:"change_date"`
	OldValue   float64   `json:"old_value"`
	NewValue   float64   `json:"new_value"`
	ChangePct  float64   `json:"change_pct"`
	RuleID     string    `json:"rule_id"`
	RiskTier   RiskTier  `json:"risk_tier"`
	Approver   string    `json:"approver"`
	ExecutedAt time.Time `json:"executed_at"`
}

// WithinDays reports whether the change happened within the trailing window of
// days ending at ref. A change dated exactly window days before ref is outside.
func (c *ChangeRecord) WithinDays(ref time.Time, days int) bool {
	cutoff := ref.AddDate(0, 0, -days)
	return c.ChangeDate.After(cutoff) && !c.ChangeDate.After(ref)
}
