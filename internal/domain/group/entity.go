package group

import (
	"time"
)

// ClientGroup is a provider group billed to one client.
type ClientGroup struct {
	ID            string
	SourceGroupID string
	Name          string
	Code          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
