package optimizing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository/mocks"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/guarding"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/recommending"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func testEngine() config.Engine {
	return config.Engine{
		CooldownDays:         7,
		MinClicks7d:          20,
		MinConversions30d:    15,
		BudgetMinClicks7d:    30,
		StabilityCVCeiling:   0.6,
		AbsoluteChangeCap:    0.20,
		DefaultMinConfidence: 0.5,
	}
}

func testDate() time.Time {
	return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
}

type pipelineMocks struct {
	policies  *mocks.MockAccountPolicyRepository
	snapshots *mocks.MockFeatureSnapshotRepository
	insights  *mocks.MockInsightRepository
	ledger    *mocks.MockChangeLedgerRepository
	entities  *mocks.MockEntityRepository
}

func newTestService(t *testing.T) (*Service, pipelineMocks) {
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		policies:  mocks.NewMockAccountPolicyRepository(ctrl),
		snapshots: mocks.NewMockFeatureSnapshotRepository(ctrl),
		insights:  mocks.NewMockInsightRepository(ctrl),
		ledger:    mocks.NewMockChangeLedgerRepository(ctrl),
		entities:  mocks.NewMockEntityRepository(ctrl),
	}

	engine := testEngine()
	cache := recommending.NewEntityCache(m.entities, 15*time.Minute)
	builder := recommending.NewContextBuilder(m.snapshots, m.insights, m.ledger, cache, engine)
	service := NewService(m.policies, builder, recommending.DefaultRegistry(), guarding.NewEvaluator(engine), nil)

	return service, m
}

func strongCampaignSnapshot(entityID string) *domain.FeatureSnapshot {
	return &domain.FeatureSnapshot{
		AccountID:  "ACC001",
		EntityID:   entityID,
		EntityType: domain.EntityTypeCampaign,
		Date:       testDate(),
		Windows: map[int]domain.WindowMetrics{
			domain.Window7:  {Clicks: 50, ROAS: 3.9, Cost: 100},
			domain.Window30: {Clicks: 220, Conversions: 40, ROAS: 3.3},
		},
		CostCV14:    0.2,
		DailyBudget: 100,
		BidTarget:   2.5,
	}
}

func expectPipelineInputs(m pipelineMocks, policy *domain.AccountPolicy, snapshots ...*domain.FeatureSnapshot) {
	m.policies.EXPECT().GetByAccountID("ACC001").Return(policy, nil)
	m.snapshots.EXPECT().GetByAccountAndDate("ACC001", testDate()).Return(snapshots, nil)
	m.insights.EXPECT().GetByAccountAndDate("ACC001", testDate()).Return(nil, nil)
	m.ledger.EXPECT().GetRecentByAccount("ACC001", testDate(), 7).Return(nil, nil)
	m.entities.EXPECT().GetByAccountID("ACC001").Return([]domain.Entity{
		{ID: "C1", AccountID: "ACC001", Type: domain.EntityTypeCampaign, Name: "Search - Generic"},
	}, nil)
}

func TestServiceGenerateReport(t *testing.T) {
	policy := &domain.AccountPolicy{
		AccountID:     "ACC001",
		Mode:          domain.ModeSuggest,
		RiskTolerance: domain.RiskConservative,
		TargetROAS:    3.0,
		Enabled:       true,
	}

	t.Run("a strong campaign yields a budget increase", func(t *testing.T) {
		service, m := newTestService(t)
		expectPipelineInputs(m, policy, strongCampaignSnapshot("C1"))

		report, err := service.GenerateReport("ACC001", testDate())
		require.NoError(t, err)

		assert.NotEmpty(t, report.RunID)
		assert.Equal(t, "ACC001", report.AccountID)
		assert.Equal(t, 1, report.Summary.Total)
		assert.Equal(t, 0, report.Summary.Blocked)

		require.Len(t, report.Recommendations, 1)
		rec := report.Recommendations[0]
		assert.Equal(t, "budget_increase_on_strong_roas", rec.RuleID)
		assert.Equal(t, domain.ActionBudgetIncrease, rec.ActionType)
		assert.InDelta(t, 105.0, rec.RecommendedValue, 1e-9)
		assert.False(t, rec.Blocked)
		assert.Len(t, rec.ChecksAttempted, 10)
	})

	t.Run("blocked recommendations stay in the report", func(t *testing.T) {
		service, m := newTestService(t)

		protected := *policy
		protected.ProtectedEntityIDs = []string{"C1"}
		expectPipelineInputs(m, &protected, strongCampaignSnapshot("C1"))

		report, err := service.GenerateReport("ACC001", testDate())
		require.NoError(t, err)

		assert.Equal(t, 1, report.Summary.Total)
		assert.Equal(t, 1, report.Summary.Blocked)
		require.Len(t, report.Recommendations, 1)
		assert.True(t, report.Recommendations[0].Blocked)
		assert.Equal(t, guarding.ReasonProtectedEntity, report.Recommendations[0].BlockReason)
	})

	t.Run("the report is retrievable afterwards", func(t *testing.T) {
		service, m := newTestService(t)
		expectPipelineInputs(m, policy, strongCampaignSnapshot("C1"))

		_, missing := service.LatestReport("ACC001")
		assert.False(t, missing)

		generated, err := service.GenerateReport("ACC001", testDate())
		require.NoError(t, err)

		stored, ok := service.LatestReport("ACC001")
		require.True(t, ok)
		assert.Same(t, generated, stored)
	})

	t.Run("an account without a policy fails", func(t *testing.T) {
		service, m := newTestService(t)
		m.policies.EXPECT().GetByAccountID("ACC001").Return(nil, nil)

		_, err := service.GenerateReport("ACC001", testDate())
		assert.ErrorContains(t, err, "no policy configured")
	})

	t.Run("a policy load failure propagates", func(t *testing.T) {
		service, m := newTestService(t)
		m.policies.EXPECT().GetByAccountID("ACC001").Return(nil, errors.New("connection refused"))

		_, err := service.GenerateReport("ACC001", testDate())
		assert.ErrorContains(t, err, "failed to load policy")
	})

	t.Run("a context build failure propagates", func(t *testing.T) {
		service, m := newTestService(t)
		m.policies.EXPECT().GetByAccountID("ACC001").Return(policy, nil)
		m.snapshots.EXPECT().GetByAccountAndDate("ACC001", testDate()).
			Return(nil, errors.New("connection refused"))

		_, err := service.GenerateReport("ACC001", testDate())
		assert.ErrorContains(t, err, "failed to load feature snapshots")
	})
}
