// Package server wires HTTP handlers into a ServeMux for the chat
// application via routing helpers.
package server

import "net/http"

// SetupRoutes configures and returns an HTTP ServeMux with all application routes.
// It sets up the chat WebSocket endpoint, the health check, and the test page.
func SetupRoutes(h *Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/{room}", h.ChatHandler)
	mux.HandleFunc("/health", h.HealthHandler)
	mux.HandleFunc("GET /{$}", h.TestPageHandler)
	return mux
}
