package punch

import (
	"context"
)

// Repository defines data access for punch events.
type Repository interface {
	// FindRange retrieves punch events whose BelongsToDate falls inside the
	// filter's date range, ordered by TimeUTC ascending.
	FindRange(ctx context.Context, filter Filter) ([]Event, error)

	// FindBySourceEntryID looks up a punch event by the provider's entry ID.
	// Returns nil (no error) when the event has not been ingested yet.
	FindBySourceEntryID(ctx context.Context, sourceEntryID string) (*Event, error)

	// InsertBatch stores punch events, silently skipping rows whose
	// SourceEntryID already exists. Returns the number of rows inserted.
	InsertBatch(ctx context.Context, events []Event) (int64, error)
}
