package recommending

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

type stubRule struct {
	id     string
	rec    *domain.Recommendation
	err    error
	panics bool
}

func (r *stubRule) ID() string   { return r.id }
func (r *stubRule) Name() string { return r.id }
func (r *stubRule) Evaluate(ctx *Context) (*domain.Recommendation, error) {
	if r.panics {
		panic("boom")
	}
	if r.rec != nil {
		rec := *r.rec
		return &rec, r.err
	}
	return nil, r.err
}

type stubAccountRule struct {
	id  string
	rec *domain.Recommendation
}

func (r *stubAccountRule) ID() string   { return r.id }
func (r *stubAccountRule) Name() string { return r.id }
func (r *stubAccountRule) EvaluateAccount(run *RunContext) (*domain.Recommendation, error) {
	if r.rec != nil {
		rec := *r.rec
		return &rec, nil
	}
	return nil, nil
}

func TestRegistryEvaluateAll(t *testing.T) {
	ctx := campaignContext("C1", snapshotWithROAS7(3.0, 50))
	run := &RunContext{
		AccountID: "ACC001",
		Date:      testDate(),
		Policy:    ctx.Policy,
		Engine:    ctx.Engine,
		Contexts:  []*Context{ctx},
	}

	t.Run("stamps identity fields on every recommendation", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(&stubRule{id: "rule_a", rec: &domain.Recommendation{ActionType: domain.ActionReview}})

		recs := registry.EvaluateAll(run)
		require.Len(t, recs, 1)
		assert.Equal(t, "rule_a", recs[0].RuleID)
		assert.Equal(t, "ACC001", recs[0].AccountID)
		assert.Equal(t, "C1", recs[0].EntityID)
		assert.Equal(t, domain.EntityTypeCampaign, recs[0].EntityType)
		assert.NotEmpty(t, recs[0].ID)
	})

	t.Run("a panicking rule is isolated from the batch", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(
			&stubRule{id: "rule_bad", panics: true},
			&stubRule{id: "rule_good", rec: &domain.Recommendation{ActionType: domain.ActionReview}},
		)

		recs := registry.EvaluateAll(run)
		require.Len(t, recs, 1)
		assert.Equal(t, "rule_good", recs[0].RuleID)
	})

	t.Run("a failing rule is isolated from the batch", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(
			&stubRule{id: "rule_bad", err: errors.New("missing input")},
			&stubRule{id: "rule_good", rec: &domain.Recommendation{ActionType: domain.ActionReview}},
		)

		recs := registry.EvaluateAll(run)
		require.Len(t, recs, 1)
		assert.Equal(t, "rule_good", recs[0].RuleID)
	})

	t.Run("account rules default to the account entity", func(t *testing.T) {
		registry := NewRegistry()
		registry.RegisterAccount(&stubAccountRule{id: "account_rule", rec: &domain.Recommendation{ActionType: domain.ActionReview}})

		recs := registry.EvaluateAll(run)
		require.Len(t, recs, 1)
		assert.Equal(t, "ACC001", recs[0].EntityID)
		assert.Equal(t, domain.EntityTypeAccount, recs[0].EntityType)
	})

	t.Run("account rules keep an explicit target entity", func(t *testing.T) {
		registry := NewRegistry()
		registry.RegisterAccount(&stubAccountRule{
			id:  "account_rule",
			rec: &domain.Recommendation{ActionType: domain.ActionBudgetRebalance, EntityID: "C1", EntityType: domain.EntityTypeCampaign},
		})

		recs := registry.EvaluateAll(run)
		require.Len(t, recs, 1)
		assert.Equal(t, "C1", recs[0].EntityID)
		assert.Equal(t, domain.EntityTypeCampaign, recs[0].EntityType)
		assert.Equal(t, "ACC001", recs[0].AccountID)
	})
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	assert.Len(t, registry.Rules(), 10)
	assert.Len(t, registry.AccountRules(), 3)

	seen := make(map[string]bool)
	for _, rule := range registry.Rules() {
		assert.False(t, seen[rule.ID()], "duplicate rule id %s", rule.ID())
		seen[rule.ID()] = true
	}
	for _, rule := range registry.AccountRules() {
		assert.False(t, seen[rule.ID()], "duplicate rule id %s", rule.ID())
		seen[rule.ID()] = true
	}
}

func TestChangePctFor(t *testing.T) {
	assert.InDelta(t, 0.05, changePctFor(domain.RiskConservative), 1e-9)
	assert.InDelta(t, 0.10, changePctFor(domain.RiskBalanced), 1e-9)
	assert.InDelta(t, 0.10, changePctFor(domain.RiskAggressive), 1e-9)
}
