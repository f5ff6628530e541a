package bulletin

import "errors"

var (
	// ErrNoRecipients indicates a broadcast cycle found nobody to send to.
	ErrNoRecipients = errors.New("no broadcast recipients configured")
)
