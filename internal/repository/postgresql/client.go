package postgresql

import (
	"context"
	"fmt"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/client"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/database"
)

type clientRepository struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.Repository {
	return &clientRepository{db: db}
}

// FindAll implements client.Repository.
func (r *clientRepository) FindAll(ctx context.Context) ([]client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, source_record_id, email, created_at, updated_at
		FROM clients
		ORDER BY email ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.SourceRecordID, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

// GroupIDsByEmail implements client.Repository.
func (r *clientRepository) GroupIDsByEmail(ctx context.Context, email string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.client_group_id
		FROM client_group_mappings m
		JOIN clients c ON c.id = m.client_id
		WHERE LOWER(c.email) = LOWER($1)
		ORDER BY m.client_group_id ASC
	`

	rows, err := q.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query client group mappings: %w", err)
	}
	defer rows.Close()

	groupIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group mapping: %w", err)
		}
		groupIDs = append(groupIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group mappings: %w", err)
	}

	return groupIDs, nil
}
