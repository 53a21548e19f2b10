package client

import (
	"context"
)

// Repository defines data access for clients and their group mappings.
type Repository interface {
	FindAll(ctx context.Context) ([]Client, error)

	// GroupIDsByEmail resolves the group IDs mapped to a client email.
	// An unknown email yields an empty slice, not an error.
	GroupIDsByEmail(ctx context.Context, email string) ([]string, error)
}
