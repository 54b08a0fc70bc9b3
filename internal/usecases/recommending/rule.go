package recommending

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
)

// Rule proposes zero or one action for a single entity. Implementations must
// be pure with respect to the Context and must treat missing numeric inputs
// as zero instead of failing.
type Rule interface {
	ID() string
	Name() string
	Evaluate(ctx *Context) (*domain.Recommendation, error)
}

// AccountRule proposes zero or one action for the account as a whole. It runs
// once per run over the full entity set.
type AccountRule interface {
	ID() string
	Name() string
	EvaluateAccount(run *RunContext) (*domain.Recommendation, error)
}

// Registry holds the ordered rule library. Registration order fixes the
// evaluation order only; the final report order comes from the ranker.
type Registry struct {
	rules        []Rule
	accountRules []AccountRule
}

func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns the registry with the full built-in rule library.
func DefaultRegistry() *Registry {
	registry := NewRegistry()

	// Budget family
	registry.Register(
		&BudgetIncreaseRule{},
		&BudgetDecreaseRule{},
		&EmergencyBudgetCutRule{},
		&PacingCutRule{},
	)

	// Bid family
	registry.Register(
		&BidTargetIncreaseRule{},
		&BidTargetDecreaseRule{},
		&BidHoldRule{},
	)

	// Status family
	registry.Register(
		&PersistentUnderperformanceRule{},
		&CTRCollapseRule{},
		&HealthyNoActionRule{},
	)

	// Account family (dedicated whole-run pass)
	registry.RegisterAccount(
		&DailyCapApproachRule{},
		&BudgetRebalanceRule{},
		&LowDataCoverageRule{},
	)

	return registry
}

// Register appends per-entity rules to the library.
func (r *Registry) Register(rules ...Rule) {
	r.rules = append(r.rules, rules...)
}

// RegisterAccount appends account-level rules to the library.
func (r *Registry) RegisterAccount(rules ...AccountRule) {
	r.accountRules = append(r.accountRules, rules...)
}

// Rules returns the per-entity rules in registration order.
func (r *Registry) Rules() []Rule {
	return r.rules
}

// AccountRules returns the account-level rules in registration order.
func (r *Registry) AccountRules() []AccountRule {
	return r.accountRules
}

// EvaluateAll invokes every registered rule for every entity context and the
// account rules once over the run. A rule failure is isolated per
// (rule, entity): logged and skipped, never aborting the batch.
func (r *Registry) EvaluateAll(run *RunContext) []*domain.Recommendation {
	recommendations := make([]*domain.Recommendation, 0)

	for _, ctx := range run.Contexts {
		for _, rule := range r.rules {
			rec, err := safeEvaluate(rule, ctx)
			if err != nil {
				log.L.WithError(err).WithFields(log.Fields{
					"rule_id":    rule.ID(),
					"account_id": run.AccountID,
					"entity_id":  ctx.Entity.ID,
				}).Error("rules: rule evaluation failed, skipping")
				continue
			}
			if rec != nil {
				finalize(rec, rule.ID(), rule.Name(), ctx.Entity)
				recommendations = append(recommendations, rec)
			}
		}
	}

	for _, rule := range r.accountRules {
		rec, err := safeEvaluateAccount(rule, run)
		if err != nil {
			log.L.WithError(err).WithFields(log.Fields{
				"rule_id":    rule.ID(),
				"account_id": run.AccountID,
			}).Error("rules: account rule evaluation failed, skipping")
			continue
		}
		if rec != nil {
			if rec.EntityID == "" {
				rec.EntityID = run.AccountID
				rec.EntityType = domain.EntityTypeAccount
			}
			rec.AccountID = run.AccountID
			rec.RuleID = rule.ID()
			rec.RuleName = rule.Name()
			assignID(rec)
			recommendations = append(recommendations, rec)
		}
	}

	return recommendations
}

// safeEvaluate converts a panicking rule into an error so one bad rule cannot
// take down the batch.
func safeEvaluate(rule Rule, ctx *Context) (rec *domain.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("rule %s panicked: %v", rule.ID(), r)
		}
	}()

	return rule.Evaluate(ctx)
}

func safeEvaluateAccount(rule AccountRule, run *RunContext) (rec *domain.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("account rule %s panicked: %v", rule.ID(), r)
		}
	}()

	return rule.EvaluateAccount(run)
}

func finalize(rec *domain.Recommendation, ruleID, ruleName string, entity domain.Entity) {
	rec.RuleID = ruleID
	rec.RuleName = ruleName
	rec.AccountID = entity.AccountID
	rec.EntityID = entity.ID
	rec.EntityType = entity.Type
	assignID(rec)
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func assignID(rec *domain.Recommendation) {
	if rec.ID != "" {
		return
	}
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		// nanoid only fails when the entropy source does; fall back to a
		// deterministic composite key.
		id = fmt.Sprintf("%s-%s-%s", rec.RuleID, rec.EntityID, rec.ActionType)
	}
	rec.ID = id
}

// changePctFor selects the proposed change magnitude for the account's risk
// tolerance.
func changePctFor(tolerance domain.RiskTolerance) float64 {
	if tolerance == domain.RiskConservative {
		return 0.05
	}
	return 0.10
}

// ratioOrZero divides, treating a missing denominator as a neutral zero.
func ratioOrZero(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
