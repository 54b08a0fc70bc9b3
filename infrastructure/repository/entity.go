package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/ChristopherHoole/gads-optimizer/infrastructure/database/postgres"
	"github.com/ChristopherHoole/gads-optimizer/internal/domain"
)

const (
	entitiesTable = "entities e"
	entityCols    = "e.id, e.account_id, e.type, e.name, e.status"
)

// EntityRepository reads entity metadata (display names, status) synced from
// the platform by the ingestion pipeline.
type EntityRepository interface {
	GetByAccountID(accountID string) ([]domain.Entity, error)
}

type entityRepository struct {
	conn *postgres.Connection
}

func NewEntityRepository(conn *postgres.Connection) EntityRepository {
	return &entityRepository{
		conn: conn,
	}
}

func (r *entityRepository) GetByAccountID(accountID string) ([]domain.Entity, error) {
	query, args, err := squirrel.
		Select(entityCols).
		From(entitiesTable).
		Where(squirrel.Eq{"e.account_id": accountID}).
		OrderBy("e.id ASC").
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

	entities := make([]domain.Entity, 0)
	for rows.Next() {
		var entity domain.Entity
		var entityType string
		var status sql.NullString

		if err := rows.Scan(&entity.ID, &entity.AccountID, &entityType, &entity.Name, &status); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}

		entity.Type = domain.EntityType(entityType)
		entity.Status = status.String
		entities = append(entities, entity)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}

	return entities, nil
}
