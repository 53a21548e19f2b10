package agent

import "errors"

var (
	ErrAgentNotFound = errors.New("agent not found")
)
