package domain

// MutationRequest is the wire shape of one change sent to the ads platform
// gateway.
type MutationRequest struct {
	CustomerID string  `json:"customer_id"`
	EntityID   string  `json:"entity_id"`
	Field      string  `json:"field"`
	Value      float64 `json:"value"`
}

// Mutation field names understood by the gateway.
const (
	FieldDailyBudget = "daily_budget"
	FieldTargetROAS  = "target_roas"
)

// MutationResponse is the gateway's acknowledgement.
type MutationResponse struct {
	ResourceName string `json:"resource_name"`
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
}
