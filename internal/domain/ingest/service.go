package ingest

import (
	"context"
)

// Service pulls provider data into local storage.
type Service interface {
	// IngestTimeEntries fetches provider time entries for the range, maps
	// them to punch events and stores them, then re-derives sessions over
	// the same range. Repeating a range is safe.
	IngestTimeEntries(ctx context.Context, req Request) (Stats, error)

	// SyncDirectory refreshes agents, client groups and activity types
	// from the provider directory.
	SyncDirectory(ctx context.Context) (DirectoryStats, error)
}
