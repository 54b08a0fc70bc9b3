package recommending

import (
	"time"

	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

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

func testPolicy() *domain.AccountPolicy {
	return &domain.AccountPolicy{
		AccountID:     "ACC001",
		Mode:          domain.ModeSuggest,
		RiskTolerance: domain.RiskConservative,
		TargetROAS:    3.0,
		Enabled:       true,
	}
}

func testDate() time.Time {
	return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
}

// campaignContext builds the context for one campaign with the given snapshot.
func campaignContext(entityID string, snapshot *domain.FeatureSnapshot) *Context {
	entity := domain.Entity{
		ID:        entityID,
		AccountID: "ACC001",
		Type:      domain.EntityTypeCampaign,
		Name:      "Search - Generic",
		Status:    "ENABLED",
	}
	if snapshot != nil {
		snapshot.AccountID = "ACC001"
		snapshot.EntityID = entityID
		snapshot.EntityType = domain.EntityTypeCampaign
	}

	return &Context{
		Entity:       entity,
		Snapshot:     snapshot,
		Policy:       testPolicy(),
		Engine:       testEngine(),
		AllEntities:  []domain.Entity{entity},
		AllSnapshots: map[string]*domain.FeatureSnapshot{entityID: snapshot},
		Date:         testDate(),
	}
}

func snapshotWithROAS7(roas, clicks float64) *domain.FeatureSnapshot {
	return &domain.FeatureSnapshot{
		Date: testDate(),
		Windows: map[int]domain.WindowMetrics{
			domain.Window7: {Clicks: clicks, ROAS: roas, Cost: 100},
		},
		CostCV14:    0.2,
		DailyBudget: 100,
		BidTarget:   2.5,
	}
}
