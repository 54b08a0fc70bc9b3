package recommending

import (
	"sort"

	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
)

type conflictKey struct {
	entityID string
	lever    domain.Lever
}

// ResolveConflicts keeps at most one recommendation per (entity, lever)
// group. Actions on the exempt "other" lever and account-level actions never
// conflict and always survive. Within a group the winner is the unblocked one,
// then the lowest priority number, then the highest confidence.
func ResolveConflicts(recommendations []*domain.Recommendation) []*domain.Recommendation {
	groups := make(map[conflictKey][]*domain.Recommendation)
	resolved := make([]*domain.Recommendation, 0, len(recommendations))

	for _, rec := range recommendations {
		lever := rec.Lever()
		if lever == domain.LeverOther || rec.EntityType == domain.EntityTypeAccount {
			resolved = append(resolved, rec)
			continue
		}
		key := conflictKey{entityID: rec.EntityID, lever: lever}
		groups[key] = append(groups[key], rec)
	}

	// Deterministic group iteration keeps run output reproducible.
	keys := make([]conflictKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].entityID != keys[j].entityID {
			return keys[i].entityID < keys[j].entityID
		}
		return keys[i].lever < keys[j].lever
	})

	for _, key := range keys {
		group := groups[key]
		winner := pickWinner(group)
		if len(group) > 1 {
			log.L.WithFields(log.Fields{
				"entity_id": key.entityID,
				"lever":     string(key.lever),
				"candidates": len(group),
				"winner_rule": winner.RuleID,
			}).Debug("conflicts: multiple recommendations for the same lever, keeping one")
		}
		resolved = append(resolved, winner)
	}

	return resolved
}

func pickWinner(group []*domain.Recommendation) *domain.Recommendation {
	winner := group[0]
	for _, candidate := range group[1:] {
		if beats(candidate, winner) {
			winner = candidate
		}
	}
	return winner
}

// beats applies the precedence rule: unblocked over blocked, then lower
// priority number, then higher confidence.
func beats(a, b *domain.Recommendation) bool {
	if a.Blocked != b.Blocked {
		return !a.Blocked
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.Confidence > b.Confidence
}
