package gadsclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	gadsdomain "github.com/ChristopherHoole/gads-optimizer/infrastructure/integrator/gads/domain"
	"github.com/ChristopherHoole/gads-optimizer/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	Mutate(ctx context.Context, request *gadsdomain.MutationRequest) (*gadsdomain.MutationResponse, error)
}

type GadsClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GadsClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Mutate sends one change to the ads gateway and decodes the acknowledgement.
func (c *GadsClient) Mutate(ctx context.Context, request *gadsdomain.MutationRequest) (*gadsdomain.MutationResponse, error) {
	url := fmt.Sprintf("%s/customers/%s/mutations", c.Cfg.GoogleAds.URL, request.CustomerID)

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize mutation request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build mutation request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.Cfg.GoogleAds.DeveloperToken)
	if c.Cfg.GoogleAds.LoginCustomer != "" {
		req.Header.Set("login-customer-id", c.Cfg.GoogleAds.LoginCustomer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"customer_id": request.CustomerID,
			"entity_id":   request.EntityID,
			"field":       request.Field,
		}).Error("gads: mutation request failed")
		return nil, errors.Wrap(err, "mutation request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read mutation response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("mutation rejected with status %d: %s", resp.StatusCode, string(body))
	}

	var response gadsdomain.MutationResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "failed to decode mutation response")
	}

	return &response, nil
}
