package clockview

import (
	"context"
)

// Service builds the first-in/last-out view from raw punch events.
type Service interface {
	// Records returns one row per (agent, day) present in the range,
	// sorted by date ascending then agent name ascending.
	Records(ctx context.Context, opts Options) ([]Record, error)
}
