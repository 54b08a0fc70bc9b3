package executing

import (
	"context"
	"fmt"
	"time"

	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/internal/metrics"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/guarding"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
)

// Mutator applies approved changes against the advertising platform. The
// executor decides whether and what to change; the mutator owns the
// platform-specific request shape.
type Mutator interface {
	ApplyBudgetChange(ctx context.Context, accountID, entityID string, newValue float64) error
	ApplyBidTargetChange(ctx context.Context, accountID, entityID string, newValue float64) error
}

// Executor applies a ranked report, re-validating each action against the
// current ledger state and isolating per-action failures.
type Executor interface {
	Execute(ctx context.Context, report *domain.OptimizationReport, mode domain.ExecutionMode) (*domain.ExecutionReport, error)
}

type Service struct {
	policyRepo   repository.AccountPolicyRepository
	snapshotRepo repository.FeatureSnapshotRepository
	insightRepo  repository.InsightRepository
	ledgerRepo   repository.ChangeLedgerRepository
	evaluator    *guarding.Evaluator
	mutator      Mutator
	metrics      *metrics.Metrics
	engine       config.Engine
	approver     string
}

func NewService(
	policyRepo repository.AccountPolicyRepository,
	snapshotRepo repository.FeatureSnapshotRepository,
	insightRepo repository.InsightRepository,
	ledgerRepo repository.ChangeLedgerRepository,
	evaluator *guarding.Evaluator,
	mutator Mutator,
	m *metrics.Metrics,
	engine config.Engine,
	approver string,
) *Service {
	return &Service{
		policyRepo:   policyRepo,
		snapshotRepo: snapshotRepo,
		insightRepo:  insightRepo,
		ledgerRepo:   ledgerRepo,
		evaluator:    evaluator,
		mutator:      mutator,
		metrics:      m,
		engine:       engine,
		approver:     approver,
	}
}

// Execute processes the report's recommendations in order. Guardrails are
// re-run against the current ledger state because time may have passed since
// the report was generated; a retried run therefore re-checks history instead
// of double-applying.
func (s *Service) Execute(ctx context.Context, report *domain.OptimizationReport, mode domain.ExecutionMode) (*domain.ExecutionReport, error) {
	if mode == domain.ExecutionModeLive && s.mutator == nil {
		return nil, fmt.Errorf("live execution requires a mutation client")
	}

	policy, err := s.policyRepo.GetByAccountID(report.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy for account %s: %w", report.AccountID, err)
	}
	if policy == nil {
		return nil, fmt.Errorf("no policy configured for account %s", report.AccountID)
	}

	snapshots, err := s.snapshotRepo.GetByAccountAndDate(report.AccountID, report.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature snapshots for account %s: %w", report.AccountID, err)
	}
	snapshotByID := make(map[string]*domain.FeatureSnapshot, len(snapshots))
	for _, snapshot := range snapshots {
		snapshotByID[snapshot.EntityID] = snapshot
	}

	insights, err := s.insightRepo.GetByAccountAndDate(report.AccountID, report.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load insights for account %s: %w", report.AccountID, err)
	}
	pacingOverCap := false
	for _, insight := range insights {
		if insight.AccountScoped() && insight.Code == domain.DiagnosisPacingOverCap {
			pacingOverCap = true
			break
		}
	}

	execution := &domain.ExecutionReport{
		RunID:   report.RunID,
		Mode:    mode,
		Results: make([]*domain.ExecutionResult, 0, len(report.Recommendations)),
	}

	logger := log.L.WithFields(log.Fields{
		"run_id":     report.RunID,
		"account_id": report.AccountID,
		"mode":       string(mode),
	})
	logger.Info("executor: starting execution")

	for _, rec := range report.Recommendations {
		if err := ctx.Err(); err != nil {
			// Cancellation leaves a well-defined prefix of completed,
			// ledgered actions.
			logger.WithError(err).Warn("executor: run cancelled, stopping")
			break
		}

		result := s.executeOne(ctx, rec, policy, snapshotByID, pacingOverCap, report.Date, mode)
		execution.Results = append(execution.Results, result)
		if s.metrics != nil {
			s.metrics.RecordExecution(string(result.Status))
		}
	}

	execution.Count()

	logger.WithFields(log.Fields{
		"executed": execution.Executed,
		"failed":   execution.Failed,
		"skipped":  execution.Skipped,
	}).Info("executor: execution finished")

	return execution, nil
}

func (s *Service) executeOne(
	ctx context.Context,
	rec *domain.Recommendation,
	policy *domain.AccountPolicy,
	snapshots map[string]*domain.FeatureSnapshot,
	pacingOverCap bool,
	date time.Time,
	mode domain.ExecutionMode,
) *domain.ExecutionResult {
	result := &domain.ExecutionResult{
		RecommendationID: rec.ID,
		EntityID:         rec.EntityID,
		ActionType:       rec.ActionType,
		ExecutedAt:       time.Now().UTC(),
	}

	lever := rec.Lever()
	if lever == domain.LeverOther {
		result.Status = domain.ExecutionSkipped
		result.Message = "advisory action, nothing to execute"
		return result
	}

	// Re-validate against the current ledger state.
	recentChanges, err := s.ledgerRepo.GetRecentByAccount(rec.AccountID, date, s.engine.CooldownDays)
	if err != nil {
		result.Status = domain.ExecutionFailed
		result.Message = "failed to read change ledger for re-validation"
		result.Error = err.Error()
		return result
	}

	verdict := s.evaluator.Evaluate(rec, &guarding.Input{
		Entity:        domain.Entity{ID: rec.EntityID, AccountID: rec.AccountID, Type: rec.EntityType},
		Snapshot:      snapshots[rec.EntityID],
		Policy:        policy,
		RecentChanges: recentChanges,
		PacingOverCap: pacingOverCap,
		Date:          date,
	})
	if !verdict.Allowed {
		result.Status = domain.ExecutionSkipped
		result.Message = fmt.Sprintf("blocked at execution time: %s", verdict.Reason)
		return result
	}

	if mode == domain.ExecutionModeDryRun {
		result.Status = domain.ExecutionSuccess
		result.Message = fmt.Sprintf("dry run: would set %s to %.2f", lever, rec.RecommendedValue)
		return result
	}

	switch lever {
	case domain.LeverBudget:
		err = s.mutator.ApplyBudgetChange(ctx, rec.AccountID, rec.EntityID, rec.RecommendedValue)
	case domain.LeverBid:
		err = s.mutator.ApplyBidTargetChange(ctx, rec.AccountID, rec.EntityID, rec.RecommendedValue)
	}
	if err != nil {
		result.Status = domain.ExecutionFailed
		result.Message = "mutation client rejected the change"
		result.Error = err.Error()
		return result
	}

	record := &domain.ChangeRecord{
		AccountID:  rec.AccountID,
		EntityID:   rec.EntityID,
		Lever:      lever,
		ChangeDate: date,
		OldValue:   rec.CurrentValue,
		NewValue:   rec.RecommendedValue,
		ChangePct:  rec.ChangePctValue(),
		RuleID:     rec.RuleID,
		RiskTier:   rec.RiskTier,
		Approver:   s.approver,
		ExecutedAt: result.ExecutedAt,
	}

	if err := s.ledgerRepo.Append(record); err != nil {
		// The platform mutation succeeded but the ledger write did not:
		// cooldown enforcement is now desynchronized from reality. Surface it
		// loudly instead of retrying, which could double-apply the mutation.
		log.L.WithError(err).WithFields(log.Fields{
			"account_id": rec.AccountID,
			"entity_id":  rec.EntityID,
			"lever":      string(lever),
			"rule_id":    rec.RuleID,
		}).Error("executor: LEDGER WRITE FAILED AFTER SUCCESSFUL MUTATION, cooldown state is inconsistent")

		result.Status = domain.ExecutionFailed
		result.Message = "change applied but ledger write failed; cooldown state is inconsistent"
		result.Error = err.Error()
		return result
	}

	result.Status = domain.ExecutionSuccess
	result.Message = fmt.Sprintf("set %s to %.2f (was %.2f)", lever, rec.RecommendedValue, rec.CurrentValue)
	return result
}
