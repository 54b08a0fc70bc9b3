package recommending

import (
	"fmt"
	"sort"
	"time"

	"github.com/ChristopherHoole/gads-optimizer/infrastructure/repository"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
	"github.com/ChristopherHoole/gads-optimizer/pkg/log"
)

// Context is the read-only view one rule evaluation sees for one entity.
// It is assembled once per run and shared by every rule; nothing in the
// pipeline mutates it.
type Context struct {
	Entity   domain.Entity
	Snapshot *domain.FeatureSnapshot
	// Insights holds the diagnoses scoped to this entity plus the
	// account-level ones.
	Insights []domain.Insight
	Policy   *domain.AccountPolicy
	Engine   config.Engine
	// AllEntities, AllSnapshots and AllInsights give account-level rules a
	// view over the whole run. Per-entity rules must not depend on them.
	AllEntities   []domain.Entity
	AllSnapshots  map[string]*domain.FeatureSnapshot
	AllInsights   []domain.Insight
	RecentChanges []*domain.ChangeRecord
	Date          time.Time
}

// Diagnosis returns the first insight with the given code scoped to this
// entity or to the account.
func (c *Context) Diagnosis(code string) (domain.Insight, bool) {
	for _, insight := range c.Insights {
		if insight.Code == code {
			return insight, true
		}
	}
	return domain.Insight{}, false
}

// HasDiagnosis reports whether a diagnosis with the given code fired for this
// entity or for the account.
func (c *Context) HasDiagnosis(code string) bool {
	_, ok := c.Diagnosis(code)
	return ok
}

// HasAccountDiagnosis reports whether an account-scoped diagnosis with the
// given code fired in this run.
func (c *Context) HasAccountDiagnosis(code string) bool {
	for _, insight := range c.AllInsights {
		if insight.AccountScoped() && insight.Code == code {
			return true
		}
	}
	return false
}

// RunContext is the whole-run view consumed by account-level rules. They run
// as a dedicated pass over the full entity set and emit zero or one
// recommendation each, so no per-entity self-suppression is needed.
type RunContext struct {
	AccountID string
	Date      time.Time
	Policy    *domain.AccountPolicy
	Engine    config.Engine
	Contexts  []*Context
	Insights  []domain.Insight
}

// HasAccountDiagnosis reports whether an account-scoped diagnosis with the
// given code fired in this run.
func (r *RunContext) HasAccountDiagnosis(code string) bool {
	for _, insight := range r.Insights {
		if insight.AccountScoped() && insight.Code == code {
			return true
		}
	}
	return false
}

// ContextBuilder assembles the per-entity contexts for one (account, date)
// run from the externally produced inputs and the trailing ledger slice.
type ContextBuilder struct {
	snapshotRepo repository.FeatureSnapshotRepository
	insightRepo  repository.InsightRepository
	ledgerRepo   repository.ChangeLedgerRepository
	entityCache  *EntityCache
	engine       config.Engine
}

func NewContextBuilder(
	snapshotRepo repository.FeatureSnapshotRepository,
	insightRepo repository.InsightRepository,
	ledgerRepo repository.ChangeLedgerRepository,
	entityCache *EntityCache,
	engine config.Engine,
) *ContextBuilder {
	return &ContextBuilder{
		snapshotRepo: snapshotRepo,
		insightRepo:  insightRepo,
		ledgerRepo:   ledgerRepo,
		entityCache:  entityCache,
		engine:       engine,
	}
}

// Build loads the run inputs and produces one Context per entity plus the
// whole-run view. Entities are ordered by id so runs are reproducible.
func (b *ContextBuilder) Build(policy *domain.AccountPolicy, date time.Time) ([]*Context, *RunContext, error) {
	accountID := policy.AccountID

	snapshots, err := b.snapshotRepo.GetByAccountAndDate(accountID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load feature snapshots for account %s: %w", accountID, err)
	}

	insights, err := b.insightRepo.GetByAccountAndDate(accountID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load insights for account %s: %w", accountID, err)
	}

	recentChanges, err := b.ledgerRepo.GetRecentByAccount(accountID, date, b.engine.CooldownDays)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load recent changes for account %s: %w", accountID, err)
	}

	entities, err := b.entityCache.GetByAccountID(accountID)
	if err != nil {
		// Display names only feed the brand-protection heuristic; a cache
		// miss must not stop the run.
		log.L.WithError(err).WithField("account_id", accountID).
			Warn("context: failed to load entity metadata, continuing without names")
		entities = nil
	}

	entityByID := make(map[string]domain.Entity, len(entities))
	for _, entity := range entities {
		entityByID[entity.ID] = entity
	}

	snapshotByID := make(map[string]*domain.FeatureSnapshot, len(snapshots))
	allEntities := make([]domain.Entity, 0, len(snapshots))
	for _, snapshot := range snapshots {
		snapshotByID[snapshot.EntityID] = snapshot

		entity, ok := entityByID[snapshot.EntityID]
		if !ok {
			entity = domain.Entity{
				ID:        snapshot.EntityID,
				AccountID: accountID,
				Type:      snapshot.EntityType,
			}
		}
		allEntities = append(allEntities, entity)
	}

	sort.Slice(allEntities, func(i, j int) bool { return allEntities[i].ID < allEntities[j].ID })

	contexts := make([]*Context, 0, len(allEntities))
	for _, entity := range allEntities {
		contexts = append(contexts, &Context{
			Entity:        entity,
			Snapshot:      snapshotByID[entity.ID],
			Insights:      scopedInsights(insights, entity.ID),
			Policy:        policy,
			Engine:        b.engine,
			AllEntities:   allEntities,
			AllSnapshots:  snapshotByID,
			AllInsights:   insights,
			RecentChanges: recentChanges,
			Date:          date,
		})
	}

	run := &RunContext{
		AccountID: accountID,
		Date:      date,
		Policy:    policy,
		Engine:    b.engine,
		Contexts:  contexts,
		Insights:  insights,
	}

	return contexts, run, nil
}

// scopedInsights selects the insights for one entity plus the account-level
// ones.
func scopedInsights(insights []domain.Insight, entityID string) []domain.Insight {
	scoped := make([]domain.Insight, 0)
	for _, insight := range insights {
		if insight.EntityID == entityID || insight.AccountScoped() {
			scoped = append(scoped, insight)
		}
	}
	return scoped
}
