package group

import (
	"context"
)

// Repository defines data access for client groups.
type Repository interface {
	FindAll(ctx context.Context) ([]ClientGroup, error)

	GetByID(ctx context.Context, id string) (ClientGroup, error)

	// Upsert inserts the group or, when SourceGroupID already exists,
	// refreshes its name and code. Returns the stored row.
	Upsert(ctx context.Context, g ClientGroup) (ClientGroup, error)
}
