package recommending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

func TestResolveConflicts(t *testing.T) {
	tests := []struct {
		name     string
		input    []*domain.Recommendation
		validate func(t *testing.T, resolved []*domain.Recommendation)
	}{
		{
			name: "lower priority number wins within a lever group",
			input: []*domain.Recommendation{
				{ID: "a", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetIncrease, Priority: 20, Confidence: 0.8},
				{ID: "b", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionPacingCut, Priority: 5, Confidence: 0.85},
			},
			validate: func(t *testing.T, resolved []*domain.Recommendation) {
				require.Len(t, resolved, 1)
				assert.Equal(t, "b", resolved[0].ID)
			},
		},
		{
			name: "unblocked beats lower priority",
			input: []*domain.Recommendation{
				{ID: "a", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionPacingCut, Priority: 5, Confidence: 0.85, Blocked: true, BlockReason: "cooldown_active"},
				{ID: "b", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetIncrease, Priority: 20, Confidence: 0.8},
			},
			validate: func(t *testing.T, resolved []*domain.Recommendation) {
				require.Len(t, resolved, 1)
				assert.Equal(t, "b", resolved[0].ID)
			},
		},
		{
			name: "equal priority falls back to higher confidence",
			input: []*domain.Recommendation{
				{ID: "a", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetIncrease, Priority: 20, Confidence: 0.7},
				{ID: "b", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetDecrease, Priority: 20, Confidence: 0.9},
			},
			validate: func(t *testing.T, resolved []*domain.Recommendation) {
				require.Len(t, resolved, 1)
				assert.Equal(t, "b", resolved[0].ID)
			},
		},
		{
			name: "different levers on the same entity both survive",
			input: []*domain.Recommendation{
				{ID: "a", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetIncrease, Priority: 20, Confidence: 0.8},
				{ID: "b", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBidTargetDecrease, Priority: 30, Confidence: 0.7},
			},
			validate: func(t *testing.T, resolved []*domain.Recommendation) {
				assert.Len(t, resolved, 2)
			},
		},
		{
			name: "advisory actions never conflict",
			input: []*domain.Recommendation{
				{ID: "a", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionReview, Priority: 40, Confidence: 0.8},
				{ID: "b", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionNoAction, Priority: 90, Confidence: 0.9},
				{ID: "c", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBidHold, Priority: 35, Confidence: 0.7},
			},
			validate: func(t *testing.T, resolved []*domain.Recommendation) {
				assert.Len(t, resolved, 3)
			},
		},
		{
			name: "account level actions are exempt",
			input: []*domain.Recommendation{
				{ID: "a", EntityID: "ACC001", EntityType: domain.EntityTypeAccount, ActionType: domain.ActionBudgetRebalance, Priority: 25, Confidence: 0.7},
				{ID: "b", EntityID: "ACC001", EntityType: domain.EntityTypeAccount, ActionType: domain.ActionReview, Priority: 15, Confidence: 0.9},
			},
			validate: func(t *testing.T, resolved []*domain.Recommendation) {
				assert.Len(t, resolved, 2)
			},
		},
		{
			name: "groups on different entities are independent",
			input: []*domain.Recommendation{
				{ID: "a", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetIncrease, Priority: 20, Confidence: 0.8},
				{ID: "b", EntityID: "C2", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetDecrease, Priority: 20, Confidence: 0.7},
			},
			validate: func(t *testing.T, resolved []*domain.Recommendation) {
				assert.Len(t, resolved, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := ResolveConflicts(tt.input)
			tt.validate(t, resolved)
		})
	}
}

func TestResolveConflictsDeterministic(t *testing.T) {
	input := []*domain.Recommendation{
		{ID: "a", EntityID: "C2", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetIncrease, Priority: 20, Confidence: 0.8},
		{ID: "b", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBudgetDecrease, Priority: 20, Confidence: 0.7},
		{ID: "c", EntityID: "C1", EntityType: domain.EntityTypeCampaign, ActionType: domain.ActionBidTargetIncrease, Priority: 30, Confidence: 0.6},
	}

	first := ResolveConflicts(input)
	for i := 0; i < 10; i++ {
		again := ResolveConflicts(input)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].ID, again[j].ID)
		}
	}
}
