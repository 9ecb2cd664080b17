// Package server defines transport errors and helpers shared by client and hub
// logic.
package server

import (
	"errors"
	"strings"
)

var (
	// ErrClientClosed is returned when sending to a connection that has closed.
	ErrClientClosed = errors.New("client closed")
	// ErrSendBufferFull is returned when a connection's outbound queue is full.
	ErrSendBufferFull = errors.New("send buffer full")
)

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
