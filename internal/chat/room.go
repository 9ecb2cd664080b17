package chat

import (
	"cmp"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Room is a named channel owning the set of sessions currently joined to it.
// All methods are safe for concurrent use.
type Room struct {
	name string
	log  *slog.Logger

	mu      sync.Mutex
	seq     uint64
	members map[*Session]uint64 // session -> join sequence
}

func newRoom(name string, log *slog.Logger) *Room {
	return &Room{
		name:    name,
		log:     log,
		members: make(map[*Session]uint64),
	}
}

// Name returns the room name.
func (r *Room) Name() string {
	return r.name
}

// Join adds s to the room. Joining twice keeps a single membership.
func (r *Room) Join(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[s]; ok {
		return
	}
	r.seq++
	r.members[s] = r.seq
}

// Leave removes s from the room. It is a no-op when s is not a member.
func (r *Room) Leave(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, s)
}

// Len returns the current member count.
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Members returns the display names of the current members in join order.
func (r *Room) Members() []string {
	return lo.Map(r.snapshot(), func(s *Session, _ int) string {
		name, _ := s.Name()
		return name
	})
}

// snapshot copies the member set, ordered by join sequence.
func (r *Room) snapshot() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := lo.Keys(r.members)
	slices.SortFunc(sessions, func(a, b *Session) int {
		return cmp.Compare(r.members[a], r.members[b])
	})
	return sessions
}

// Broadcast delivers msg to every current member. Delivery is best-effort:
// a failing member never prevents delivery to the others.
func (r *Room) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("Failed to encode broadcast", "error", err)
		return
	}

	members := r.snapshot()
	r.log.Debug("Broadcasting message", "type", msg.Type, "recipients", len(members))
	for _, member := range members {
		member.Send(payload)
	}
}
