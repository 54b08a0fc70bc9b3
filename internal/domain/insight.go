package domain

// Diagnosis codes emitted by the external diagnosis component. The core only
// pattern-matches on them; it never computes a diagnosis itself.
const (
	DiagnosisCostSpike      = "COST_SPIKE"
	DiagnosisROASDrop       = "ROAS_DROP"
	DiagnosisCTRDrop        = "CTR_DROP"
	DiagnosisCVRDrop        = "CVR_DROP"
	DiagnosisLowData        = "LOW_DATA"
	DiagnosisPacingOverCap  = "BUDGET_PACING_OVER_CAP"
	DiagnosisApproachingCap = "APPROACHING_DAILY_CAP"
)

// Insight is one diagnosis firing, scoped either to a single entity or to the
// account as a whole (empty EntityID).
type Insight struct {
	AccountID  string         `json:"account_id"`
	EntityID   string         `json:"entity_id,omitempty"`
	Code       string         `json:"code"`
	Confidence float64        `json:"confidence"`
	Evidence   map[string]any `json:"evidence,omitempty"`
}

// AccountScoped reports whether the insight applies to the account as a whole.
func (i Insight) AccountScoped() bool {
	return i.EntityID == ""
}
