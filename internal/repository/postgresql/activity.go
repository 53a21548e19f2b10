package postgresql

import (
	"context"
	"fmt"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/activity"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/database"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.Repository {
	return &activityRepository{db: db}
}

// FindAll implements activity.Repository.
func (r *activityRepository) FindAll(ctx context.Context) ([]activity.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, source_activity_id, name, created_at, updated_at
		FROM activity_types
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity types: %w", err)
	}
	defer rows.Close()

	var types []activity.Type
	for rows.Next() {
		var t activity.Type
		if err := rows.Scan(&t.ID, &t.SourceActivityID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity type: %w", err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity types: %w", err)
	}

	return types, nil
}

// Upsert implements activity.Repository.
func (r *activityRepository) Upsert(ctx context.Context, t activity.Type) (activity.Type, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_types (id, source_activity_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (source_activity_id) DO UPDATE
		SET name = EXCLUDED.name,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, t.ID, t.SourceActivityID, t.Name).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return activity.Type{}, fmt.Errorf("failed to upsert activity type: %w", err)
	}

	return t, nil
}
