package postgresql

import (
	"context"
	"fmt"

	"github.com/flextime-hq/flextime-backend-go/internal/domain/agent"
	"github.com/flextime-hq/flextime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type agentRepository struct {
	db *database.DB
}

func NewAgentRepository(db *database.DB) agent.Repository {
	return &agentRepository{db: db}
}

// FindAll implements agent.Repository.
func (r *agentRepository) FindAll(ctx context.Context) ([]agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, source_member_id, name, email, timezone, created_at, updated_at
		FROM agents
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	var agents []agent.Agent
	for rows.Next() {
		var a agent.Agent
		if err := rows.Scan(&a.ID, &a.SourceMemberID, &a.Name, &a.Email, &a.Timezone, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agents: %w", err)
	}

	return agents, nil
}

// GetByID implements agent.Repository.
func (r *agentRepository) GetByID(ctx context.Context, id string) (agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, source_member_id, name, email, timezone, created_at, updated_at
		FROM agents
		WHERE id = $1
	`

	var a agent.Agent
	err := q.QueryRow(ctx, query, id).Scan(&a.ID, &a.SourceMemberID, &a.Name, &a.Email, &a.Timezone, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return agent.Agent{}, agent.ErrAgentNotFound
		}
		return agent.Agent{}, fmt.Errorf("failed to get agent: %w", err)
	}

	return a, nil
}

// Upsert implements agent.Repository.
func (r *agentRepository) Upsert(ctx context.Context, a agent.Agent) (agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO agents (id, source_member_id, name, email, timezone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (source_member_id) DO UPDATE
		SET name = EXCLUDED.name,
			email = EXCLUDED.email,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, a.ID, a.SourceMemberID, a.Name, a.Email, a.Timezone).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return agent.Agent{}, fmt.Errorf("failed to upsert agent: %w", err)
	}

	return a, nil
}
