package activity

import (
	"context"
)

// Repository defines data access for activity types.
type Repository interface {
	FindAll(ctx context.Context) ([]Type, error)

	// Upsert inserts the activity type or refreshes its name when
	// SourceActivityID already exists. Returns the stored row.
	Upsert(ctx context.Context, t Type) (Type, error)
}
