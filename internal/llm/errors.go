package llm

import "errors"

var (
	// ErrConnection marks network-level failures: unreachable endpoint,
	// timed-out or canceled request.
	ErrConnection = errors.New("provider connection failed")

	// ErrBadResponse marks HTTP error statuses and responses the client
	// cannot interpret, including empty completions.
	ErrBadResponse = errors.New("provider returned bad response")
)
