package session

import (
	"context"
)

// Repository defines data access for derived sessions.
type Repository interface {
	// FindRange retrieves sessions starting inside the filter's date range,
	// decorated with agent, group and activity display names.
	FindRange(ctx context.Context, filter Filter) ([]Session, error)

	// InsertBatch stores sessions, silently skipping rows that collide with
	// an existing (agent_id, client_group_id, start_time_utc). Returns the
	// number of rows actually inserted, so re-derivation is an idempotent
	// no-op rather than a failure.
	InsertBatch(ctx context.Context, sessions []Session) (int64, error)
}
