package optimizing

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/internal/metrics"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/guarding"
	"github.com/ChristopherHoole/gads-optimizer/internal/usecases/recommending"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
)

// Optimizer generates the per-account optimization report: rules → guardrails
// → conflict resolution → ranking.
type Optimizer interface {
	GenerateReport(accountID string, date time.Time) (*domain.OptimizationReport, error)
	LatestReport(accountID string) (*domain.OptimizationReport, bool)
}

type Service struct {
	policyRepo repository.AccountPolicyRepository
	builder    *recommending.ContextBuilder
	registry   *recommending.Registry
	evaluator  *guarding.Evaluator
	metrics    *metrics.Metrics

	mu      sync.RWMutex
	reports map[string]*domain.OptimizationReport
}

func NewService(
	policyRepo repository.AccountPolicyRepository,
	builder *recommending.ContextBuilder,
	registry *recommending.Registry,
	evaluator *guarding.Evaluator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		policyRepo: policyRepo,
		builder:    builder,
		registry:   registry,
		evaluator:  evaluator,
		metrics:    m,
		reports:    make(map[string]*domain.OptimizationReport),
	}
}

// GenerateReport runs the full pipeline for one (account, date).
func (s *Service) GenerateReport(accountID string, date time.Time) (*domain.OptimizationReport, error) {
	started := time.Now()

	policy, err := s.policyRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy for account %s: %w", accountID, err)
	}
	if policy == nil {
		return nil, fmt.Errorf("no policy configured for account %s", accountID)
	}

	contexts, run, err := s.builder.Build(policy, date)
	if err != nil {
		return nil, err
	}

	logger := log.L.WithFields(log.Fields{
		"account_id": accountID,
		"date":       date.Format(time.DateOnly),
		"entities":   len(contexts),
	})
	logger.Info("optimizer: starting run")

	recommendations := s.registry.EvaluateAll(run)

	contextByEntity := make(map[string]*recommending.Context, len(contexts))
	for _, ctx := range contexts {
		contextByEntity[ctx.Entity.ID] = ctx
	}
	pacingOverCap := run.HasAccountDiagnosis(domain.DiagnosisPacingOverCap)

	for _, rec := range recommendations {
		verdict := s.evaluator.Apply(rec, s.guardInput(rec, contextByEntity, run, pacingOverCap))
		if s.metrics != nil {
			s.metrics.RecordRecommendation(string(rec.ActionType), string(rec.RiskTier))
			if !verdict.Allowed {
				s.metrics.RecordBlocked(verdict.Reason)
			}
		}
	}

	resolved := recommending.ResolveConflicts(recommendations)
	recommending.Rank(resolved)

	report := &domain.OptimizationReport{
		RunID:           uuid.New().String(),
		AccountID:       accountID,
		Date:            date,
		GeneratedAt:     time.Now().UTC(),
		Recommendations: resolved,
	}
	report.Summarize()

	s.mu.Lock()
	s.reports[accountID] = report
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ObserveRunDuration(time.Since(started).Seconds())
	}

	logger.WithFields(log.Fields{
		"run_id":  report.RunID,
		"total":   report.Summary.Total,
		"blocked": report.Summary.Blocked,
	}).Info("optimizer: run finished")

	return report, nil
}

// LatestReport returns the most recent report generated for the account.
func (s *Service) LatestReport(accountID string) (*domain.OptimizationReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.reports[accountID]
	return report, ok
}

// guardInput assembles the evaluator input for one recommendation. Account-
// level recommendations carry no snapshot; the entity-scoped checks skip them.
func (s *Service) guardInput(
	rec *domain.Recommendation,
	contexts map[string]*recommending.Context,
	run *recommending.RunContext,
	pacingOverCap bool,
) *guarding.Input {
	input := &guarding.Input{
		Policy:        run.Policy,
		PacingOverCap: pacingOverCap,
		Date:          run.Date,
	}

	if ctx, ok := contexts[rec.EntityID]; ok {
		input.Entity = ctx.Entity
		input.Snapshot = ctx.Snapshot
		input.RecentChanges = ctx.RecentChanges
	} else {
		input.Entity = domain.Entity{ID: rec.EntityID, AccountID: rec.AccountID, Type: rec.EntityType}
		if len(run.Contexts) > 0 {
			input.RecentChanges = run.Contexts[0].RecentChanges
		}
	}

	return input
}
