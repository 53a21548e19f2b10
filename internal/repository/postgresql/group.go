package postgresql

import (
	"context"
	"fmt"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/group"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type groupRepository struct {
	db *database.DB
}

func NewGroupRepository(db *database.DB) group.Repository {
	return &groupRepository{db: db}
}

// FindAll implements group.Repository.
func (r *groupRepository) FindAll(ctx context.Context) ([]group.ClientGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, source_group_id, name, code, created_at, updated_at
		FROM client_groups
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query client groups: %w", err)
	}
	defer rows.Close()

	var groups []group.ClientGroup
	for rows.Next() {
		var g group.ClientGroup
		if err := rows.Scan(&g.ID, &g.SourceGroupID, &g.Name, &g.Code, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client group: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate client groups: %w", err)
	}

	return groups, nil
}

// GetByID implements group.Repository.
func (r *groupRepository) GetByID(ctx context.Context, id string) (group.ClientGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, source_group_id, name, code, created_at, updated_at
		FROM client_groups
		WHERE id = $1
	`

	var g group.ClientGroup
	err := q.QueryRow(ctx, query, id).Scan(&g.ID, &g.SourceGroupID, &g.Name, &g.Code, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return group.ClientGroup{}, group.ErrGroupNotFound
		}
		return group.ClientGroup{}, fmt.Errorf("failed to get client group: %w", err)
	}

	return g, nil
}

// Upsert implements group.Repository.
func (r *groupRepository) Upsert(ctx context.Context, g group.ClientGroup) (group.ClientGroup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO client_groups (id, source_group_id, name, code)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (source_group_id) DO UPDATE
		SET name = EXCLUDED.name,
			code = EXCLUDED.code,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, g.ID, g.SourceGroupID, g.Name, g.Code).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return group.ClientGroup{}, fmt.Errorf("failed to upsert client group: %w", err)
	}

	return g, nil
}
