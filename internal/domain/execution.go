package domain

import "time"

// ExecutionMode selects whether the executor mutates the platform or only
// simulates.
type ExecutionMode string

const (
	ExecutionModeDryRun ExecutionMode = "dry_run"
	ExecutionModeLive   ExecutionMode = "live"
)

// ExecutionStatus is the per-action outcome.
type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "success"
	ExecutionFailed  ExecutionStatus = "failed"
	ExecutionSkipped ExecutionStatus = "skipped"
)

// ExecutionResult is the outcome of executing one recommendation.
type ExecutionResult struct {
	RecommendationID string          `json:"recommendation_id"`
	EntityID         string          `json:"entity_id"`
	ActionType       ActionType      `json:"action_type"`
	Status           ExecutionStatus `json:"status"`
	Message          string          `json:"message,omitempty"`
	Error            string          `json:"error,omitempty"`
	ExecutedAt       time.Time       `json:"executed_at"`
}

// ExecutionReport is the ordered list of per-action results plus aggregates.
type ExecutionReport struct {
	RunID    string             `json:"run_id"`
	Mode     ExecutionMode      `json:"mode"`
	Results  []*ExecutionResult `json:"results"`
	Executed int                `json:"executed"`
	Failed   int                `json:"failed"`
	Skipped  int                `json:"skipped"`
}

// Count updates the aggregate counters from the result list.
func (r *ExecutionReport) Count() {
	r.Executed, r.Failed, r.Skipped = 0, 0, 0
	for _, res := range r.Results {
		switch res.Status {
		case ExecutionSuccess:
			r.Executed++
		case ExecutionFailed:
			r.Failed++
		case ExecutionSkipped:
			r.Skipped++
		}
	}
}
