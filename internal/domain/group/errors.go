package group

import "errors"

var (
	ErrGroupNotFound = errors.New("client group not found")
)
