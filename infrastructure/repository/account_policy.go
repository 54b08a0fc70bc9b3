package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/database/postgres"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

const (
	accountPoliciesTable = "account_policies ap"
	accountPolicyCols    = "ap.account_id, ap.mode, ap.risk_tolerance, ap.target_roas, ap.target_cpa, ap.daily_spend_cap, ap.monthly_spend_cap, ap.protected_entity_ids, ap.brand_protection, ap.min_confidence, ap.currency, ap.timezone, ap.enabled"
)

// AccountPolicyRepository reads per-account optimization policies. Schema and
// field validation happen in the configuration service that writes these rows.
type AccountPolicyRepository interface {
	GetByAccountID(accountID string) (*domain.AccountPolicy, error)
	ListEnabled() ([]*domain.AccountPolicy, error)
}

type accountPolicyRepository struct {
	conn *postgres.Connection
}

func NewAccountPolicyRepository(conn *postgres.Connection) AccountPolicyRepository {
	return &accountPolicyRepository{
		conn: conn,
	}
}

func (r *accountPolicyRepository) GetByAccountID(accountID string) (*domain.AccountPolicy, error) {
	query, args, err := squirrel.
		Select(accountPolicyCols).
		From(accountPoliciesTable).
		Where(squirrel.Eq{"ap.account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	policy, err := scanPolicy(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan account policy: %w", err)
	}

	return policy, nil
}

func (r *accountPolicyRepository) ListEnabled() ([]*domain.AccountPolicy, error) {
	query, args, err := squirrel.
		Select(accountPolicyCols).
		From(accountPoliciesTable).
		Where(squirrel.Eq{"ap.enabled": true}).
		OrderBy("ap.account_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	policies := make([]*domain.AccountPolicy, 0)
	for rows.Next() {
		policy, err := scanPolicy(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account policy: %w", err)
		}
		policies = append(policies, policy)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return policies, nil
}

func scanPolicy(scan func(dest ...any) error) (*domain.AccountPolicy, error) {
	var policy domain.AccountPolicy
	var mode, riskTolerance string
	var protectedIDs pq.StringArray

	err := scan(
		&policy.AccountID,
		&mode,
		&riskTolerance,
		&policy.TargetROAS,
		&policy.TargetCPA,
		&policy.DailySpendCap,
		&policy.MonthlySpendCap,
		&protectedIDs,
		&policy.BrandProtection,
		&policy.MinConfidence,
		&policy.Currency,
		&policy.Timezone,
		&policy.Enabled,
	)
	if err != nil {
		return nil, err
	}

	policy.Mode = domain.AutomationMode(mode)
	policy.RiskTolerance = domain.RiskTolerance(riskTolerance)
	policy.ProtectedEntityIDs = protectedIDs

	return &policy, nil
}
