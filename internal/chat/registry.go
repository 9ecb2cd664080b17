package chat

import (
	"log/slog"
	"sync"
)

// Registry maps room names to their Room. Rooms are created on first lookup
// and never removed.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	log   *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		rooms: make(map[string]*Room),
		log:   log,
	}
}

// Get returns the room called name, creating it if needed.
func (r *Registry) Get(name string) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[name]
	if ok {
		return room
	}

	room = newRoom(name, r.log.With("room", name))
	r.rooms[name] = room
	r.log.Debug("Room created", "room", name, "rooms", len(r.rooms))
	return room
}

// Len returns the number of rooms created so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
