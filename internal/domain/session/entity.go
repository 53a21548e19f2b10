package session

import (
	"time"
)

// Session is one continuous work span derived by pairing punch events.
// A complete session has EndTimeUTC and DurationMinutes set; an incomplete
// one (clock-in with no matching clock-out) has both nil. Sessions are
// written once per derivation run and never mutated; the storage layer
// deduplicates on (agent_id, client_group_id, start_time_utc).
type Session struct {
	ID              string
	AgentID         string
	GroupID         string
	ActivityID      *string
	StartTimeUTC    time.Time
	EndTimeUTC      *time.Time
	DurationMinutes *int
	IsComplete      bool
	CreatedAt       time.Time

	// DTO fields resolved by join
	AgentName    *string
	AgentEmail   *string
	GroupName    *string
	ActivityName *string
}
