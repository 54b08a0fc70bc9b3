package domain

import "time"

// Rolling windows (in days) produced by the analytics pipeline.
const (
	Window7  = 7
	Window14 = 14
	Window30 = 30
	Window90 = 90
)

// WindowMetrics holds the rolling-window aggregates and derived ratios for a
// single lookback window.
type WindowMetrics struct {
	Impressions     float64 `json:"impressions"`
	Clicks          float64 `json:"clicks"`
	Cost            float64 `json:"cost"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
	CTR             float64 `json:"ctr"`
	CVR             float64 `json:"cvr"`
	CPA             float64 `json:"cpa"`
	ROAS            float64 `json:"roas"`
}

// FeatureSnapshot is the immutable per (entity, date) input produced by the
// analytics pipeline. The core never mutates it.
type FeatureSnapshot struct {
	AccountID   string                `json:"account_id"`
	EntityID    string                `json:"entity_id"`
	EntityType  EntityType            `json:"entity_type"`
	Date        time.Time             `json:"date"`
	Windows     map[int]WindowMetrics `json:"windows"`
	CostCV14    float64               `json:"cost_cv_14"`
	LowData     bool                  `json:"low_data"`
	DailyBudget float64               `json:"daily_budget"`
	BidTarget   float64               `json:"bid_target"`
}

// Window returns the metrics for the given lookback window. Missing windows
// come back zero-valued so rule math never has to nil-check upstream gaps.
func (s *FeatureSnapshot) Window(days int) WindowMetrics {
	if s == nil || s.Windows == nil {
		return WindowMetrics{}
	}
	return s.Windows[days]
}
