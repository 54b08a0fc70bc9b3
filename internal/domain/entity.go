package domain

// EntityType identifies the kind of optimization target.
type EntityType string

const (
	EntityTypeAccount  EntityType = "ACCOUNT"
	EntityTypeCampaign EntityType = "CAMPAIGN"
)

// Entity is an addressable optimization target. Campaigns always belong to
// exactly one account; an account entity references itself.
type Entity struct {
	ID        string     `json:"id"`
	AccountID string     `json:"account_id"`
	Type      EntityType `json:"type"`
	Name      string     `json:"name"`
	Status    string     `json:"status,omitempty"`
}
