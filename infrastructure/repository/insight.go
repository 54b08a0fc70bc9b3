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
	insightsTable = "insights i"
	insightCols   = "i.account_id, i.entity_id, i.code, i.confidence, i.evidence"
)

// InsightRepository reads the diagnoses emitted by the external diagnosis
// component for one (account, date) run.
type InsightRepository interface {
	GetByAccountAndDate(accountID string, date time.Time) ([]domain.Insight, error)
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

func (r *insightRepository) GetByAccountAndDate(accountID string, date time.Time) ([]domain.Insight, error) {
	query, args, err := squirrel.
		Select(insightCols).
		From(insightsTable).
		Where(squirrel.Eq{"i.account_id": accountID, "i.date": date.Format("2006-01-02")}).
		OrderBy("i.entity_id ASC", "i.code ASC").
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

	insights := make([]domain.Insight, 0)
	for rows.Next() {
		var insight domain.Insight
		var entityID sql.NullString
		var evidenceJSON []byte

		if err := rows.Scan(&insight.AccountID, &entityID, &insight.Code, &insight.Confidence, &evidenceJSON); err != nil {
			return nil, fmt.Errorf("failed to scan insight: %w", err)
		}

		insight.EntityID = entityID.String
		if len(evidenceJSON) > 0 {
			if err := json.Unmarshal(evidenceJSON, &insight.Evidence); err != nil {
				return nil, fmt.Errorf("failed to deserialize insight evidence: %w", err)
			}
		}

		insights = append(insights, insight)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return insights, nil
}
