package executing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/ChristopherHoole/gads-optimizer/infrastructure/repository/mocks"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/executing/mocks"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/guarding"
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

func ptr(v float64) *float64 { return &v }

type serviceMocks struct {
	policies  *repomocks.MockAccountPolicyRepository
	snapshots *repomocks.MockFeatureSnapshotRepository
	insights  *repomocks.MockInsightRepository
	ledger    *repomocks.MockChangeLedgerRepository
	mutator   *mocks.MockMutator
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		policies:  repomocks.NewMockAccountPolicyRepository(ctrl),
		snapshots: repomocks.NewMockFeatureSnapshotRepository(ctrl),
		insights:  repomocks.NewMockInsightRepository(ctrl),
		ledger:    repomocks.NewMockChangeLedgerRepository(ctrl),
		mutator:   mocks.NewMockMutator(ctrl),
	}
	service := NewService(
		m.policies, m.snapshots, m.insights, m.ledger,
		guarding.NewEvaluator(testEngine()),
		m.mutator, nil, testEngine(), "optimizer-service",
	)
	return service, m
}

func suggestPolicy() *domain.AccountPolicy {
	return &domain.AccountPolicy{
		AccountID:     "ACC001",
		Mode:          domain.ModeSuggest,
		RiskTolerance: domain.RiskConservative,
		TargetROAS:    3.0,
		Enabled:       true,
	}
}

func healthySnapshot(entityID string) *domain.FeatureSnapshot {
	return &domain.FeatureSnapshot{
		AccountID:  "ACC001",
		EntityID:   entityID,
		EntityType: domain.EntityTypeCampaign,
		Windows: map[int]domain.WindowMetrics{
			domain.Window7:  {Clicks: 50, ROAS: 3.9, Cost: 100},
			domain.Window30: {Clicks: 220, Conversions: 40, ROAS: 3.5},
		},
		DailyBudget: 100,
	}
}

func budgetRecommendation(id, entityID string) *domain.Recommendation {
	return &domain.Recommendation{
		ID:               id,
		RuleID:           "budget_increase_on_strong_roas",
		AccountID:        "ACC001",
		EntityID:         entityID,
		EntityType:       domain.EntityTypeCampaign,
		ActionType:       domain.ActionBudgetIncrease,
		RiskTier:         domain.RiskTierLow,
		Confidence:       0.8,
		CurrentValue:     100,
		RecommendedValue: 105,
		ChangePct:        ptr(0.05),
	}
}

func testReport(recs ...*domain.Recommendation) *domain.OptimizationReport {
	return &domain.OptimizationReport{
		RunID:           "RUN123",
		AccountID:       "ACC001",
		Date:            testDate(),
		Recommendations: recs,
	}
}

func expectRunInputs(m serviceMocks, snapshots ...*domain.FeatureSnapshot) {
	m.policies.EXPECT().GetByAccountID("ACC001").Return(suggestPolicy(), nil)
	m.snapshots.EXPECT().GetByAccountAndDate("ACC001", testDate()).Return(snapshots, nil)
	m.insights.EXPECT().GetByAccountAndDate("ACC001", testDate()).Return(nil, nil)
}

func TestServiceExecuteDryRun(t *testing.T) {
	service, m := newTestService(t)

	expectRunInputs(m, healthySnapshot("C1"))
	m.ledger.EXPECT().GetRecentByAccount("ACC001", testDate(), 7).Return(nil, nil)

	report, err := service.Execute(context.Background(), testReport(budgetRecommendation("rec-1", "C1")), domain.ExecutionModeDryRun)
	require.NoError(t, err)

	assert.Equal(t, "RUN123", report.RunID)
	assert.Equal(t, domain.ExecutionModeDryRun, report.Mode)
	assert.Equal(t, 1, report.Executed)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Skipped)

	require.Len(t, report.Results, 1)
	assert.Equal(t, domain.ExecutionSuccess, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Message, "dry run")
}

func TestServiceExecuteLive(t *testing.T) {
	t.Run("applies a budget change and ledgers it once", func(t *testing.T) {
		service, m := newTestService(t)

		expectRunInputs(m, healthySnapshot("C1"))
		m.ledger.EXPECT().GetRecentByAccount("ACC001", testDate(), 7).Return(nil, nil)
		m.mutator.EXPECT().ApplyBudgetChange(gomock.Any(), "ACC001", "C1", 105.0).Return(nil)
		m.ledger.EXPECT().Append(gomock.Any()).DoAndReturn(func(record *domain.ChangeRecord) error {
			assert.Equal(t, "C1", record.EntityID)
			assert.Equal(t, domain.LeverBudget, record.Lever)
			assert.Equal(t, testDate(), record.ChangeDate)
			assert.Equal(t, 100.0, record.OldValue)
			assert.Equal(t, 105.0, record.NewValue)
			assert.Equal(t, "optimizer-service", record.Approver)
			return nil
		}).Times(1)

		report, err := service.Execute(context.Background(), testReport(budgetRecommendation("rec-1", "C1")), domain.ExecutionModeLive)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Executed)
		assert.Equal(t, domain.ExecutionSuccess, report.Results[0].Status)
	})

	t.Run("routes bid actions through the bid mutation", func(t *testing.T) {
		service, m := newTestService(t)

		rec := budgetRecommendation("rec-1", "C1")
		rec.ActionType = domain.ActionBidTargetIncrease
		rec.CurrentValue = 2.5
		rec.RecommendedValue = 2.625

		expectRunInputs(m, healthySnapshot("C1"))
		m.ledger.EXPECT().GetRecentByAccount("ACC001", testDate(), 7).Return(nil, nil)
		m.mutator.EXPECT().ApplyBidTargetChange(gomock.Any(), "ACC001", "C1", 2.625).Return(nil)
		m.ledger.EXPECT().Append(gomock.Any()).Return(nil)

		report, err := service.Execute(context.Background(), testReport(rec), domain.ExecutionModeLive)
		require.NoError(t, err)
		assert.Equal(t, domain.ExecutionSuccess, report.Results[0].Status)
	})

	t.Run("a mutation failure is isolated from later actions", func(t *testing.T) {
		service, m := newTestService(t)

		expectRunInputs(m, healthySnapshot("C1"), healthySnapshot("C2"))
		m.ledger.EXPECT().GetRecentByAccount("ACC001", testDate(), 7).Return(nil, nil).Times(2)
		m.mutator.EXPECT().ApplyBudgetChange(gomock.Any(), "ACC001", "C1", 105.0).
			Return(errors.New("MUTATE_ERROR: RESOURCE_EXHAUSTED"))
		m.mutator.EXPECT().ApplyBudgetChange(gomock.Any(), "ACC001", "C2", 105.0).Return(nil)
		m.ledger.EXPECT().Append(gomock.Any()).Return(nil).Times(1)

		report, err := service.Execute(
			context.Background(),
			testReport(budgetRecommendation("rec-1", "C1"), budgetRecommendation("rec-2", "C2")),
			domain.ExecutionModeLive,
		)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Executed)
		assert.Equal(t, 1, report.Failed)
		assert.Equal(t, domain.ExecutionFailed, report.Results[0].Status)
		assert.Contains(t, report.Results[0].Error, "RESOURCE_EXHAUSTED")
		assert.Equal(t, domain.ExecutionSuccess, report.Results[1].Status)
	})

	t.Run("a ledger write failure after the mutation is reported as failed", func(t *testing.T) {
		service, m := newTestService(t)

		expectRunInputs(m, healthySnapshot("C1"))
		m.ledger.EXPECT().GetRecentByAccount("ACC001", testDate(), 7).Return(nil, nil)
		m.mutator.EXPECT().ApplyBudgetChange(gomock.Any(), "ACC001", "C1", 105.0).Return(nil)
		m.ledger.EXPECT().Append(gomock.Any()).Return(errors.New("connection refused"))

		report, err := service.Execute(context.Background(), testReport(budgetRecommendation("rec-1", "C1")), domain.ExecutionModeLive)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Failed)
		assert.Contains(t, report.Results[0].Message, "ledger write failed")
	})

	t.Run("live execution without a mutation client is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewService(
			repomocks.NewMockAccountPolicyRepository(ctrl),
			repomocks.NewMockFeatureSnapshotRepository(ctrl),
			repomocks.NewMockInsightRepository(ctrl),
			repomocks.NewMockChangeLedgerRepository(ctrl),
			guarding.NewEvaluator(testEngine()),
			nil, nil, testEngine(), "optimizer-service",
		)

		_, err := service.Execute(context.Background(), testReport(), domain.ExecutionModeLive)
		assert.ErrorContains(t, err, "mutation client")
	})
}

func TestServiceExecuteSkips(t *testing.T) {
	t.Run("advisory actions are skipped without touching the platform", func(t *testing.T) {
		service, m := newTestService(t)

		rec := budgetRecommendation("rec-1", "C1")
		rec.ActionType = domain.ActionReview
		rec.ChangePct = nil

		expectRunInputs(m, healthySnapshot("C1"))

		report, err := service.Execute(context.Background(), testReport(rec), domain.ExecutionModeLive)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, "advisory action, nothing to execute", report.Results[0].Message)
	})

	t.Run("an action blocked at execution time is skipped", func(t *testing.T) {
		service, m := newTestService(t)

		expectRunInputs(m, healthySnapshot("C1"))
		// A budget change landed between report generation and execution.
		m.ledger.EXPECT().GetRecentByAccount("ACC001", testDate(), 7).Return([]*domain.ChangeRecord{{
			AccountID:  "ACC001",
			EntityID:   "C1",
			Lever:      domain.LeverBudget,
			ChangeDate: testDate().AddDate(0, 0, -1),
		}}, nil)

		report, err := service.Execute(context.Background(), testReport(budgetRecommendation("rec-1", "C1")), domain.ExecutionModeLive)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Skipped)
		assert.Contains(t, report.Results[0].Message, "blocked at execution time: cooldown_active")
	})

	t.Run("a ledger read failure fails the action without mutating", func(t *testing.T) {
		service, m := newTestService(t)

		expectRunInputs(m, healthySnapshot("C1"))
		m.ledger.EXPECT().GetRecentByAccount("ACC001", testDate(), 7).
			Return(nil, errors.New("connection refused"))

		report, err := service.Execute(context.Background(), testReport(budgetRecommendation("rec-1", "C1")), domain.ExecutionModeLive)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Failed)
		assert.Contains(t, report.Results[0].Message, "re-validation")
	})
}

func TestServiceExecuteInputFailures(t *testing.T) {
	t.Run("missing policy", func(t *testing.T) {
		service, m := newTestService(t)
		m.policies.EXPECT().GetByAccountID("ACC001").Return(nil, nil)

		_, err := service.Execute(context.Background(), testReport(), domain.ExecutionModeDryRun)
		assert.ErrorContains(t, err, "no policy configured")
	})

	t.Run("policy load failure", func(t *testing.T) {
		service, m := newTestService(t)
		m.policies.EXPECT().GetByAccountID("ACC001").Return(nil, errors.New("connection refused"))

		_, err := service.Execute(context.Background(), testReport(), domain.ExecutionModeDryRun)
		assert.ErrorContains(t, err, "failed to load policy")
	})

	t.Run("cancellation stops processing further actions", func(t *testing.T) {
		service, m := newTestService(t)

		expectRunInputs(m, healthySnapshot("C1"), healthySnapshot("C2"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := service.Execute(ctx, testReport(budgetRecommendation("rec-1", "C1"), budgetRecommendation("rec-2", "C2")), domain.ExecutionModeDryRun)
		require.NoError(t, err)
		assert.Empty(t, report.Results)
	})
}
