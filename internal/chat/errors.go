package chat

import "errors"

var (
	// ErrProtocol marks an inbound message the connection should be closed for.
	ErrProtocol = errors.New("protocol error")
	// ErrJokeUnavailable marks a failed joke request. The session stays usable.
	ErrJokeUnavailable = errors.New("joke unavailable")
)
