package recommending

import (
	"sort"

	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

// Rank orders recommendations by (priority ascending, confidence descending,
// rule id ascending). The order is fully deterministic: the same inputs must
// always produce the same report and the same execution order.
func Rank(recommendations []*domain.Recommendation) {
	sort.SliceStable(recommendations, func(i, j int) bool {
		a, b := recommendations[i], recommendations[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		// Same rule firing for several entities: break ties on entity id.
		return a.EntityID < b.EntityID
	})
}
