package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/executing"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/optimizing"
)

// OptimizationRunConfig holds the scheduler settings for the nightly run.
type OptimizationRunConfig struct {
	CronSchedule string
	Enabled      bool
	Mode         domain.ExecutionMode
}

// OptimizationRunService schedules and executes the nightly optimization run
// across all enabled accounts.
type OptimizationRunService struct {
	scheduler  *gocron.Scheduler
	config     OptimizationRunConfig
	policyRepo repository.AccountPolicyRepository
	optimizer  optimizing.Optimizer
	executor   executing.Executor

	runMutex           sync.Mutex
	runActive          bool
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

func NewOptimizationRunService(
	policyRepo repository.AccountPolicyRepository,
	optimizer optimizing.Optimizer,
	executor executing.Executor,
	appConfig *config.Config,
) *OptimizationRunService {
	runConfig := OptimizationRunConfig{
		CronSchedule: appConfig.OptimizationRun.CronSchedule,
		Enabled:      appConfig.OptimizationRun.Enabled,
		Mode:         domain.ExecutionMode(appConfig.OptimizationRun.Mode),
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": runConfig.CronSchedule,
		"enabled":       runConfig.Enabled,
		"mode":          string(runConfig.Mode),
	}).Info("Optimization run scheduler configuration loaded")

	return &OptimizationRunService{
		scheduler:  scheduler,
		config:     runConfig,
		policyRepo: policyRepo,
		optimizer:  optimizer,
		executor:   executor,
	}
}

// Start schedules the nightly run and stops the scheduler when the context is
// cancelled.
func (s *OptimizationRunService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Optimization run disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting optimization run scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule optimization run: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping optimization run scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualRun starts a run outside the schedule, e.g. from the API.
func (s *OptimizationRunService) TriggerManualRun() {
	go s.runAllAccounts(context.Background())
}

// IsRunning reports whether a run is currently in progress.
func (s *OptimizationRunService) IsRunning() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	return s.runActive
}

// GetStatus returns the scheduler state for the status endpoint.
func (s *OptimizationRunService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	status := map[string]any{
		"enabled":  s.config.Enabled,
		"schedule": s.config.CronSchedule,
		"mode":     string(s.config.Mode),
		"running":  s.runActive,
	}

	if !s.lastRunStartedAt.IsZero() {
		status["last_run_started_at"] = s.lastRunStartedAt.Format(time.RFC3339)
	}
	if !s.lastRunCompletedAt.IsZero() {
		status["last_run_completed_at"] = s.lastRunCompletedAt.Format(time.RFC3339)
	}

	return status
}

// runAllAccounts processes every enabled account for yesterday's snapshot
// date. Per-account failures are logged and skipped.
func (s *OptimizationRunService) runAllAccounts(ctx context.Context) {
	s.runMutex.Lock()
	if s.runActive {
		s.runMutex.Unlock()
		logrus.Info("Optimization run already in progress, skipping")
		return
	}
	s.runActive = true
	s.lastRunStartedAt = time.Now()
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.runActive = false
		s.lastRunCompletedAt = time.Now()
		s.runMutex.Unlock()
	}()

	startTime := time.Now()
	date := yesterday()

	policies, err := s.policyRepo.ListEnabled()
	if err != nil {
		logrus.WithError(err).Error("Failed to list enabled accounts for the optimization run")
		return
	}

	if len(policies) == 0 {
		logrus.Info("No enabled accounts found for the optimization run")
		return
	}

	logrus.WithFields(logrus.Fields{
		"accounts": len(policies),
		"date":     date.Format(time.DateOnly),
		"mode":     string(s.config.Mode),
	}).Info("Starting optimization run for all enabled accounts")

	for _, policy := range policies {
		if err := ctx.Err(); err != nil {
			logrus.WithError(err).Warn("Optimization run cancelled")
			return
		}
		s.runAccount(ctx, policy, date)
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"accounts": len(policies),
	}).Info("Optimization run finished")
}

func (s *OptimizationRunService) runAccount(ctx context.Context, policy *domain.AccountPolicy, date time.Time) {
	logger := logrus.WithFields(logrus.Fields{
		"account_id": policy.AccountID,
		"date":       date.Format(time.DateOnly),
	})

	report, err := s.optimizer.GenerateReport(policy.AccountID, date)
	if err != nil {
		logger.WithError(err).Error("Failed to generate optimization report")
		return
	}

	// Suggest-and-below accounts only get a report; execution is manual.
	if !autoExecutes(policy.Mode) {
		logger.WithField("total", report.Summary.Total).Info("Report generated, account does not auto-execute")
		return
	}

	execution, err := s.executor.Execute(ctx, report, s.config.Mode)
	if err != nil {
		logger.WithError(err).Error("Failed to execute optimization report")
		return
	}

	logger.WithFields(logrus.Fields{
		"executed": execution.Executed,
		"failed":   execution.Failed,
		"skipped":  execution.Skipped,
	}).Info("Report executed")
}

func autoExecutes(mode domain.AutomationMode) bool {
	return mode == domain.ModeAutoLowRisk || mode == domain.ModeAutoExpanded
}

func yesterday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}
