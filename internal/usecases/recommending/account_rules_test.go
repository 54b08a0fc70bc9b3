package recommending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

// buildRun assembles a run over campaign snapshots keyed by entity id.
func buildRun(policy *domain.AccountPolicy, snapshots map[string]*domain.FeatureSnapshot) *RunContext {
	entities := make([]domain.Entity, 0, len(snapshots))
	for id := range snapshots {
		entities = append(entities, domain.Entity{ID: id, AccountID: policy.AccountID, Type: domain.EntityTypeCampaign})
	}

	contexts := make([]*Context, 0, len(entities))
	for _, entity := range entities {
		contexts = append(contexts, &Context{
			Entity:       entity,
			Snapshot:     snapshots[entity.ID],
			Policy:       policy,
			Engine:       testEngine(),
			AllEntities:  entities,
			AllSnapshots: snapshots,
			Date:         testDate(),
		})
	}

	return &RunContext{
		AccountID: policy.AccountID,
		Date:      testDate(),
		Policy:    policy,
		Engine:    testEngine(),
		Contexts:  contexts,
	}
}

func TestDailyCapApproachRule(t *testing.T) {
	rule := &DailyCapApproachRule{}

	snapshotWithCost7 := func(cost float64) *domain.FeatureSnapshot {
		return &domain.FeatureSnapshot{
			Windows: map[int]domain.WindowMetrics{domain.Window7: {Cost: cost}},
		}
	}

	tests := []struct {
		name     string
		dailyCap float64
		cost7    float64
		fires    bool
	}{
		// 630/7 = 90 daily against a cap of 100 is 90%, inside [85%, 100%).
		{"spend at 90% of the cap alerts", 100, 630, true},
		{"spend at 50% of the cap is silent", 100, 350, false},
		// 735/7 = 105 daily has already breached; breach handling is pacing's job.
		{"spend over the cap is silent", 100, 735, false},
		{"no cap configured is silent", 0, 630, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := testPolicy()
			policy.DailySpendCap = tt.dailyCap

			run := buildRun(policy, map[string]*domain.FeatureSnapshot{"C1": snapshotWithCost7(tt.cost7)})
			rec, err := rule.EvaluateAccount(run)
			require.NoError(t, err)

			if !tt.fires {
				assert.Nil(t, rec)
				return
			}
			require.NotNil(t, rec)
			assert.Equal(t, domain.ActionReview, rec.ActionType)
			assert.Equal(t, 15, rec.Priority)
			// EntityID stays empty; the registry stamps the account id.
			assert.Empty(t, rec.EntityID)
		})
	}
}

func TestBudgetRebalanceRule(t *testing.T) {
	rule := &BudgetRebalanceRule{}

	snapshot30 := func(roas, clicks float64) *domain.FeatureSnapshot {
		return &domain.FeatureSnapshot{
			Windows:     map[int]domain.WindowMetrics{domain.Window30: {ROAS: roas, Clicks: clicks}},
			DailyBudget: 100,
		}
	}

	t.Run("wide spread shifts budget away from the worst performer", func(t *testing.T) {
		run := buildRun(testPolicy(), map[string]*domain.FeatureSnapshot{
			"C1": snapshot30(8.0, 100),
			"C2": snapshot30(2.0, 100),
		})

		rec, err := rule.EvaluateAccount(run)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, domain.ActionBudgetRebalance, rec.ActionType)
		assert.Equal(t, "C2", rec.EntityID)
		assert.Equal(t, 25, rec.Priority)
		require.NotNil(t, rec.ChangePct)
		assert.InDelta(t, -0.05, *rec.ChangePct, 1e-9)
	})

	t.Run("narrow spread is silent", func(t *testing.T) {
		run := buildRun(testPolicy(), map[string]*domain.FeatureSnapshot{
			"C1": snapshot30(4.0, 100),
			"C2": snapshot30(2.0, 100),
		})

		rec, err := rule.EvaluateAccount(run)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("low data campaigns are excluded from the comparison", func(t *testing.T) {
		worst := snapshot30(1.0, 100)
		worst.LowData = true
		run := buildRun(testPolicy(), map[string]*domain.FeatureSnapshot{
			"C1": snapshot30(8.0, 100),
			"C2": snapshot30(3.0, 100),
			"C3": worst,
		})

		rec, err := rule.EvaluateAccount(run)
		require.NoError(t, err)
		// Spread between C1 and C2 is only 2.67x; C3 must not widen it.
		assert.Nil(t, rec)
	})

	t.Run("single eligible campaign is silent", func(t *testing.T) {
		run := buildRun(testPolicy(), map[string]*domain.FeatureSnapshot{
			"C1": snapshot30(8.0, 100),
		})

		rec, err := rule.EvaluateAccount(run)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestLowDataCoverageRule(t *testing.T) {
	rule := &LowDataCoverageRule{}

	snapshotLowData := func(lowData bool) *domain.FeatureSnapshot {
		return &domain.FeatureSnapshot{
			LowData: lowData,
			Windows: map[int]domain.WindowMetrics{},
		}
	}

	t.Run("majority low data emits one account warning", func(t *testing.T) {
		run := buildRun(testPolicy(), map[string]*domain.FeatureSnapshot{
			"C1": snapshotLowData(true),
			"C2": snapshotLowData(true),
			"C3": snapshotLowData(false),
		})

		rec, err := rule.EvaluateAccount(run)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, domain.ActionReview, rec.ActionType)
		assert.Equal(t, 60, rec.Priority)
		assert.Equal(t, domain.DiagnosisLowData, rec.DiagnosisCode)
	})

	t.Run("exactly half low data is silent", func(t *testing.T) {
		run := buildRun(testPolicy(), map[string]*domain.FeatureSnapshot{
			"C1": snapshotLowData(true),
			"C2": snapshotLowData(false),
		})

		rec, err := rule.EvaluateAccount(run)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}
