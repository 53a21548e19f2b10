package agent

import (
	"context"
)

// Repository defines data access for agents.
type Repository interface {
	FindAll(ctx context.Context) ([]Agent, error)

	// GetByID retrieves a single agent.
	GetByID(ctx context.Context, id string) (Agent, error)

	// Upsert inserts the agent or, when SourceMemberID already exists,
	// refreshes its name, email and timezone. Returns the stored row.
	Upsert(ctx context.Context, a Agent) (Agent, error)
}
