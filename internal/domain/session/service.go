package session

import (
	"context"
)

// Deriver pairs raw punch events into sessions and persists them.
type Deriver interface {
	// DeriveRange derives sessions for every (agent, day) group inside the
	// requested range and stores them. Safe to call repeatedly over the
	// same period.
	DeriveRange(ctx context.Context, req DeriveRequest) (DeriveResult, error)
}
