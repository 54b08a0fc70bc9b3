package domain

import "time"

// ReportSummary carries the aggregate counts consumed by the review surface.
type ReportSummary struct {
	Total      int              `json:"total"`
	Blocked    int              `json:"blocked"`
	ByRiskTier map[RiskTier]int `json:"by_risk_tier"`
}

// OptimizationReport is the ordered, post-ranking output of one run.
type OptimizationReport struct {
	RunID           string            `json:"run_id"`
	AccountID       string            `json:"account_id"`
	Date            time.Time         `json:"date"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Recommendations []*Recommendation `json:"recommendations"`
	Summary         ReportSummary     `json:"summary"`
}

// Summarize recomputes the summary counts from the recommendation list.
func (r *OptimizationReport) Summarize() {
	summary := ReportSummary{ByRiskTier: make(map[RiskTier]int)}
	for _, rec := range r.Recommendations {
		summary.Total++
		if rec.Blocked {
			summary.Blocked++
		}
		summary.ByRiskTier[rec.RiskTier]++
	}
	r.Summary = summary
}
