package punch

import (
	"time"
)

// Direction is the kind of a punch event: a clock-in or a clock-out.
type Direction string

const (
	DirectionIn  Direction = "In"
	DirectionOut Direction = "Out"
)

// Valid reports whether d is one of the two known punch directions.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Event is a single immutable clock-in or clock-out fact for one agent.
// SourceEntryID is the provider's time-entry ID and the deduplication key.
// BelongsToDate is the calendar day the provider assigned to the event,
// resolved upstream against the agent's timezone; it is never recomputed here.
type Event struct {
	ID            string
	SourceEntryID string
	AgentID       string
	GroupID       string
	ActivityID    *string
	Direction     Direction
	TimeUTC       time.Time
	LocalTime     *string
	BelongsToDate string // YYYY-MM-DD
	CreatedAt     time.Time
}
