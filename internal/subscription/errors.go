package subscription

import "errors"

var (
	// ErrUserNotFound indicates no user exists for the given lookup.
	ErrUserNotFound = errors.New("user not found")
)
