package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/database/postgres"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

const (
	changeLedgerTable = "change_ledger cl"
	changeLedgerCols  = "cl.account_id, cl.entity_id, cl.lever, cl.change_date, cl.old_value, cl.new_value, cl.change_pct, cl.rule_id, cl.risk_tier, cl.approver, cl.executed_at"
)

// ChangeLedgerRepository is the append-only history of executed changes.
// Rows are never updated or deleted; corrections are new rows.
type ChangeLedgerRepository interface {
	// HasRecentChange reports whether a change exists for (account, entity, lever)
	// dated within the trailing window of days ending at ref.
	HasRecentChange(accountID, entityID string, lever domain.Lever, ref time.Time, days int) (bool, error)
	// GetRecentByAccount returns all changes for the account dated within the
	// trailing window of days ending at ref.
	GetRecentByAccount(accountID string, ref time.Time, days int) ([]*domain.ChangeRecord, error)
	// GetByAccountAndRange returns changes in [from, to] for the audit surface.
	GetByAccountAndRange(accountID string, from, to time.Time) ([]*domain.ChangeRecord, error)
	// Append inserts one change. Re-inserting a logically identical change on
	// the same date is a no-op (key-level idempotency).
	Append(record *domain.ChangeRecord) error
}

type changeLedgerRepository struct {
	conn *postgres.Connection
}

func NewChangeLedgerRepository(conn *postgres.Connection) ChangeLedgerRepository {
	return &changeLedgerRepository{
		conn: conn,
	}
}

func (r *changeLedgerRepository) HasRecentChange(accountID, entityID string, lever domain.Lever, ref time.Time, days int) (bool, error) {
	cutoff := ref.AddDate(0, 0, -days)

	query, args, err := squirrel.
		Select("COUNT(1)").
		From(changeLedgerTable).
		Where(squirrel.Eq{"cl.account_id": accountID, "cl.entity_id": entityID, "cl.lever": string(lever)}).
		Where(squirrel.Gt{"cl.change_date": cutoff.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"cl.change_date": ref.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to scan change count: %w", err)
	}

	return count > 0, nil
}

func (r *changeLedgerRepository) GetRecentByAccount(accountID string, ref time.Time, days int) ([]*domain.ChangeRecord, error) {
	cutoff := ref.AddDate(0, 0, -days)
	return r.queryRange(accountID, squirrel.And{
		squirrel.Gt{"cl.change_date": cutoff.Format("2006-01-02")},
		squirrel.LtOrEq{"cl.change_date": ref.Format("2006-01-02")},
	})
}

func (r *changeLedgerRepository) GetByAccountAndRange(accountID string, from, to time.Time) ([]*domain.ChangeRecord, error) {
	return r.queryRange(accountID, squirrel.And{
		squirrel.GtOrEq{"cl.change_date": from.Format("2006-01-02")},
		squirrel.LtOrEq{"cl.change_date": to.Format("2006-01-02")},
	})
}

func (r *changeLedgerRepository) queryRange(accountID string, dateFilter squirrel.Sqlizer) ([]*domain.ChangeRecord, error) {
	query, args, err := squirrel.
		Select(changeLedgerCols).
		From(changeLedgerTable).
		Where(squirrel.Eq{"cl.account_id": accountID}).
		Where(dateFilter).
		OrderBy("cl.change_date ASC", "cl.entity_id ASC").
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

	records := make([]*domain.ChangeRecord, 0)
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change record: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return records, nil
}

func (r *changeLedgerRepository) Append(record *domain.ChangeRecord) error {
	query := squirrel.StatementBuilder.
		Insert("change_ledger").
		Columns(
			"account_id", "entity_id", "lever", "change_date",
			"old_value", "new_value", "change_pct",
			"rule_id", "risk_tier", "approver", "executed_at",
		).
		Values(
			record.AccountID,
			record.EntityID,
			string(record.Lever),
			record.ChangeDate.Format("2006-01-02"),
			record.OldValue,
			record.NewValue,
			record.ChangePct,
			record.RuleID,
			string(record.RiskTier),
			record.Approver,
			record.ExecutedAt,
		).
		Suffix(`ON CONFLICT (account_id, entity_id, lever, change_date) DO NOTHING`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("failed to append change record: %w", err)
	}

	return nil
}

func (r *changeLedgerRepository) scanRecord(rows *sql.Rows) (*domain.ChangeRecord, error) {
	var record domain.ChangeRecord
	var lever, riskTier string

	err := rows.Scan(
		&record.AccountID,
		&record.EntityID,
		&lever,
		&record.ChangeDate,
		&record.OldValue,
		&record.NewValue,
		&record.ChangePct,
		&record.RuleID,
		&riskTier,
		&record.Approver,
		&record.ExecutedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Lever = domain.Lever(lever)
	record.RiskTier = domain.RiskTier(riskTier)

	return &record, nil
}
