package gads

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	gadsdomain "github.com/ChristopherHoole/gads-optimizer/infrastructure/integrator/gads/domain"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/integrator/gads/gadsclient"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
	"github.com/ChristopherHoole/gads-optimizer/pkg/utils"
)

// GadsIntegrator implements the executor's mutation collaborator on top of
// the ads gateway client.
type GadsIntegrator struct {
	cfg    *config.Config
	Client gadsclient.Client
}

func New(cfg *config.Config, client gadsclient.Client) *GadsIntegrator {
	return &GadsIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *GadsIntegrator) ApplyBudgetChange(ctx context.Context, accountID, entityID string, newValue float64) error {
	return s.apply(ctx, accountID, entityID, gadsdomain.FieldDailyBudget, newValue)
}

func (s *GadsIntegrator) ApplyBidTargetChange(ctx context.Context, accountID, entityID string, newValue float64) error {
	return s.apply(ctx, accountID, entityID, gadsdomain.FieldTargetROAS, newValue)
}

func (s *GadsIntegrator) apply(ctx context.Context, accountID, entityID, field string, newValue float64) error {
	// The gateway rejects values with sub-cent precision.
	response, err := s.Client.Mutate(ctx, &gadsdomain.MutationRequest{
		CustomerID: accountID,
		EntityID:   entityID,
		Field:      field,
		Value:      utils.RoundWithTwoDecimalPlace(newValue),
	})
	if err != nil {
		return fmt.Errorf("failed to apply %s change for entity %s: %w", field, entityID, err)
	}

	logrus.WithFields(logrus.Fields{
		"account_id":    accountID,
		"entity_id":     entityID,
		"field":         field,
		"value":         newValue,
		"resource_name": response.ResourceName,
	}).Info("gads: change applied")

	return nil
}
