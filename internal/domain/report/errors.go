package report

import "errors"

var (
	// ErrNoGroupsForClient means the client exists but has no mapped groups,
	// so there is nothing to report on.
	ErrNoGroupsForClient = errors.New("no client groups mapped to this client")
)
