package activity

import (
	"time"
)

// Type is an activity template defined in the provider (e.g. "Support",
// "Outbound Calls"). Punch events reference it by SourceActivityID.
type Type struct {
	ID               string
	SourceActivityID string
	Name             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
