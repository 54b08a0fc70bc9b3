package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "github.com/ChristopherHoole/gads-optimizer/infrastructure/repository/mocks"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	execmocks "github.com/ChristopherHoole/gads-optimizer/internal/usecases/executing/mocks"
	optmocks "github.com/ChristopherHoole/gads-optimizer/internal/usecases/optimizing/mocks"
)

type runMocks struct {
	policies  *repomocks.MockAccountPolicyRepository
	optimizer *optmocks.MockOptimizer
	executor  *execmocks.MockExecutor
}

func newTestRunService(t *testing.T, mode string) (*OptimizationRunService, runMocks) {
	ctrl := gomock.NewController(t)
	m := runMocks{
		policies:  repomocks.NewMockAccountPolicyRepository(ctrl),
		optimizer: optmocks.NewMockOptimizer(ctrl),
		executor:  execmocks.NewMockExecutor(ctrl),
	}

	appConfig := &config.Config{
		OptimizationRun: config.OptimizationRun{
			CronSchedule: "0 6 * * *",
			Enabled:      true,
			Mode:         mode,
		},
	}

	return NewOptimizationRunService(m.policies, m.optimizer, m.executor, appConfig), m
}

func reportFor(accountID string) *domain.OptimizationReport {
	return &domain.OptimizationReport{
		RunID:     "RUN123",
		AccountID: accountID,
		Date:      yesterday(),
	}
}

func TestRunAllAccounts(t *testing.T) {
	t.Run("suggest accounts only get a report", func(t *testing.T) {
		service, m := newTestRunService(t, string(domain.ExecutionModeLive))

		m.policies.EXPECT().ListEnabled().Return([]*domain.AccountPolicy{
			{AccountID: "ACC001", Mode: domain.ModeSuggest, Enabled: true},
		}, nil)
		m.optimizer.EXPECT().GenerateReport("ACC001", yesterday()).Return(reportFor("ACC001"), nil)
		// No executor expectation: suggest never auto-executes.

		service.runAllAccounts(context.Background())
	})

	t.Run("auto accounts execute in the configured mode", func(t *testing.T) {
		service, m := newTestRunService(t, string(domain.ExecutionModeDryRun))

		report := reportFor("ACC002")
		m.policies.EXPECT().ListEnabled().Return([]*domain.AccountPolicy{
			{AccountID: "ACC002", Mode: domain.ModeAutoLowRisk, Enabled: true},
		}, nil)
		m.optimizer.EXPECT().GenerateReport("ACC002", yesterday()).Return(report, nil)
		m.executor.EXPECT().Execute(gomock.Any(), report, domain.ExecutionModeDryRun).
			Return(&domain.ExecutionReport{RunID: "RUN123", Mode: domain.ExecutionModeDryRun}, nil)

		service.runAllAccounts(context.Background())
	})

	t.Run("a failing account does not stop the others", func(t *testing.T) {
		service, m := newTestRunService(t, string(domain.ExecutionModeLive))

		m.policies.EXPECT().ListEnabled().Return([]*domain.AccountPolicy{
			{AccountID: "ACC001", Mode: domain.ModeSuggest, Enabled: true},
			{AccountID: "ACC002", Mode: domain.ModeSuggest, Enabled: true},
		}, nil)
		m.optimizer.EXPECT().GenerateReport("ACC001", yesterday()).
			Return(nil, errors.New("no policy configured for account ACC001"))
		m.optimizer.EXPECT().GenerateReport("ACC002", yesterday()).Return(reportFor("ACC002"), nil)

		service.runAllAccounts(context.Background())
	})

	t.Run("an executor failure is contained per account", func(t *testing.T) {
		service, m := newTestRunService(t, string(domain.ExecutionModeLive))

		report := reportFor("ACC001")
		m.policies.EXPECT().ListEnabled().Return([]*domain.AccountPolicy{
			{AccountID: "ACC001", Mode: domain.ModeAutoExpanded, Enabled: true},
			{AccountID: "ACC002", Mode: domain.ModeSuggest, Enabled: true},
		}, nil)
		m.optimizer.EXPECT().GenerateReport("ACC001", yesterday()).Return(report, nil)
		m.executor.EXPECT().Execute(gomock.Any(), report, domain.ExecutionModeLive).
			Return(nil, errors.New("connection refused"))
		m.optimizer.EXPECT().GenerateReport("ACC002", yesterday()).Return(reportFor("ACC002"), nil)

		service.runAllAccounts(context.Background())
	})

	t.Run("listing failure aborts the run", func(t *testing.T) {
		service, m := newTestRunService(t, string(domain.ExecutionModeLive))
		m.policies.EXPECT().ListEnabled().Return(nil, errors.New("connection refused"))

		service.runAllAccounts(context.Background())
	})

	t.Run("cancellation stops before the next account", func(t *testing.T) {
		service, m := newTestRunService(t, string(domain.ExecutionModeLive))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		m.policies.EXPECT().ListEnabled().Return([]*domain.AccountPolicy{
			{AccountID: "ACC001", Mode: domain.ModeSuggest, Enabled: true},
		}, nil)
		// No optimizer expectation: the cancelled context is checked first.

		service.runAllAccounts(ctx)
	})
}

func TestRunStatus(t *testing.T) {
	service, m := newTestRunService(t, string(domain.ExecutionModeDryRun))

	assert.False(t, service.IsRunning())

	status := service.GetStatus()
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 6 * * *", status["schedule"])
	assert.Equal(t, "dry_run", status["mode"])
	assert.Equal(t, false, status["running"])
	assert.NotContains(t, status, "last_run_started_at")

	m.policies.EXPECT().ListEnabled().Return(nil, nil)
	service.runAllAccounts(context.Background())

	status = service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Contains(t, status, "last_run_started_at")
	assert.Contains(t, status, "last_run_completed_at")
}

func TestAutoExecutes(t *testing.T) {
	assert.False(t, autoExecutes(domain.ModeInsights))
	assert.False(t, autoExecutes(domain.ModeSuggest))
	assert.True(t, autoExecutes(domain.ModeAutoLowRisk))
	assert.True(t, autoExecutes(domain.ModeAutoExpanded))
}
