package client

import (
	"time"
)

// Client is a report recipient synced from the client directory. A client
// receives hours for every group mapped to it.
type Client struct {
	ID             string
	SourceRecordID string
	Email          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GroupMapping links a client to one of its billed groups.
type GroupMapping struct {
	ID        string
	ClientID  string
	GroupID   string
	CreatedAt time.Time
}
