package agent

import (
	"time"
)

// Agent is a tracked worker synced from the provider's People directory.
type Agent struct {
	ID             string
	SourceMemberID string
	Name           string
	Email          *string
	Timezone       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
