// Package server implements the HTTP and WebSocket transport for the chat relay.
//
// It accepts connections on /chat/{room}, pairs each one with a chat.Session,
// and pumps frames between the socket and the session. Room membership and
// fan-out live in package chat; this package only owns connection lifecycle,
// configuration, origin checks, and graceful shutdown.
package server
