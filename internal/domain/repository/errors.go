package repository

import "errors"

var (
	// ErrTemporary marks a collaborator failure worth retrying (rate limit, 5xx, timeout)
	ErrTemporary = errors.New("temporary failure")
	// ErrNotFound is returned by lookups that match nothing
	ErrNotFound = errors.New("not found")
)
