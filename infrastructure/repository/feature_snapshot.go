package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/database/postgres"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

const (
	featureSnapshotsTable = "feature_snapshots fs"
	featureSnapshotCols   = "fs.account_id, fs.entity_id, fs.entity_type, fs.date, fs.windows, fs.cost_cv_14, fs.low_data, fs.daily_budget, fs.bid_target"
)

// FeatureSnapshotRepository reads the per (entity, date) snapshots produced by
// the external analytics pipeline. The optimizer never writes them.
type FeatureSnapshotRepository interface {
	GetByAccountAndDate(accountID string, date time.Time) ([]*domain.FeatureSnapshot, error)
	GetByEntityAndDate(entityID string, date time.Time) (*domain.FeatureSnapshot, error)
}

type featureSnapshotRepository struct {
	conn *postgres.Connection
}

func NewFeatureSnapshotRepository(conn *postgres.Connection) FeatureSnapshotRepository {
	return &featureSnapshotRepository{
		conn: conn,
	}
}

func (r *featureSnapshotRepository) GetByAccountAndDate(accountID string, date time.Time) ([]*domain.FeatureSnapshot, error) {
	query, args, err := squirrel.
		Select(featureSnapshotCols).
		From(featureSnapshotsTable).
		Where(squirrel.Eq{"fs.account_id": accountID, "fs.date": date.Format("2006-01-02")}).
		OrderBy("fs.entity_id ASC").
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

	snapshots := make([]*domain.FeatureSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feature snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return snapshots, nil
}

func (r *featureSnapshotRepository) GetByEntityAndDate(entityID string, date time.Time) (*domain.FeatureSnapshot, error) {
	query, args, err := squirrel.
		Select(featureSnapshotCols).
		From(featureSnapshotsTable).
		Where(squirrel.Eq{"fs.entity_id": entityID, "fs.date": date.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	var snapshot domain.FeatureSnapshot
	var entityType string
	var windowsJSON []byte

	err = row.Scan(
		&snapshot.AccountID,
		&snapshot.EntityID,
		&entityType,
		&snapshot.Date,
		&windowsJSON,
		&snapshot.CostCV14,
		&snapshot.LowData,
		&snapshot.DailyBudget,
		&snapshot.BidTarget,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan feature snapshot: %w", err)
	}

	snapshot.EntityType = domain.EntityType(entityType)
	if err := unmarshalWindows(windowsJSON, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *featureSnapshotRepository) scanSnapshot(rows *sql.Rows) (*domain.FeatureSnapshot, error) {
	var snapshot domain.FeatureSnapshot
	var entityType string
	var windowsJSON []byte

	err := rows.Scan(
		&snapshot.AccountID,
		&snapshot.EntityID,
		&entityType,
		&snapshot.Date,
		&windowsJSON,
		&snapshot.CostCV14,
		&snapshot.LowData,
		&snapshot.DailyBudget,
		&snapshot.BidTarget,
	)
	if err != nil {
		return nil, err
	}

	snapshot.EntityType = domain.EntityType(entityType)
	if err := unmarshalWindows(windowsJSON, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func unmarshalWindows(data []byte, snapshot *domain.FeatureSnapshot) error {
	if len(data) == 0 {
		snapshot.Windows = map[int]domain.WindowMetrics{}
		return nil
	}
	if err := json.Unmarshal(data, &snapshot.Windows); err != nil {
		return fmt.Errorf("failed to deserialize window metrics: %w", err)
	}
	return nil
}
