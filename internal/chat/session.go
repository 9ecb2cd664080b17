package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/Tyrowin/roomchat/internal/chat")

// SendFunc pushes one serialized message to the remote peer.
type SendFunc func(data []byte) error

// Factory builds sessions bound to rooms of a shared Registry.
type Factory struct {
	registry *Registry
	jokes    JokeProvider
	log      *slog.Logger
}

// NewFactory creates a session factory. jokes may be nil, in which case joke
// requests fail with ErrJokeUnavailable.
func NewFactory(registry *Registry, jokes JokeProvider, log *slog.Logger) *Factory {
	if log == nil {
		log = slog.Default()
	}
	return &Factory{registry: registry, jokes: jokes, log: log}
}

// Registry returns the registry sessions are bound through.
func (f *Factory) Registry() *Registry {
	return f.registry
}

// NewSession creates an anonymous session bound to the room called roomName.
func (f *Factory) NewSession(send SendFunc, roomName string) *Session {
	id := uuid.NewString()
	room := f.registry.Get(roomName)
	s := &Session{
		id:    id,
		send:  send,
		room:  room,
		jokes: f.jokes,
		log:   f.log.With("session_id", id, "room", room.Name()),
	}
	s.log.Debug("Created chat session")
	return s
}

// Session is the protocol state of one connection. It starts anonymous and
// becomes named on its first join.
type Session struct {
	id    string
	send  SendFunc
	room  *Room
	jokes JokeProvider
	log   *slog.Logger

	mu     sync.Mutex
	name   *string
	closed bool
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Room returns the room the session was bound to at creation.
func (s *Session) Room() *Room {
	return s.room
}

// Name returns the display name and whether one has been set.
func (s *Session) Name() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.name == nil {
		return "", false
	}
	return *s.name, true
}

func (s *Session) namePtr() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.name == nil {
		return nil
	}
	name := *s.name
	return &name
}

// Send forwards data to the peer. Failures are dropped.
func (s *Session) Send(data []byte) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Debug("Recovered from panic in send", "panic", r)
		}
	}()

	if err := s.send(data); err != nil {
		s.log.Debug("Dropped outbound message", "error", err)
	}
}

// HandleMessage decodes raw and runs the matching handler. Errors wrapping
// ErrProtocol mean the connection sent an invalid message.
func (s *Session) HandleMessage(ctx context.Context, raw []byte) error {
	cmd, err := ParseCommand(raw)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "chat."+CommandType(cmd), trace.WithAttributes(
		attribute.String("chat.room", s.room.Name()),
		attribute.String("chat.session_id", s.id),
	))
	defer span.End()

	switch c := cmd.(type) {
	case Join:
		s.HandleJoin(*c.Name)
	case Chat:
		s.HandleChat(*c.Text)
	case GetJoke:
		err = s.HandleJoke(ctx)
	case GetMembers:
		s.ShowMembers()
	default:
		err = fmt.Errorf("%w: unsupported command %T", ErrProtocol, cmd)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// HandleJoin sets the display name, joins the room and announces it to every
// member, the joiner included.
func (s *Session) HandleJoin(name string) {
	s.mu.Lock()
	s.name = &name
	s.mu.Unlock()

	s.room.Join(s)
	s.log.Info("Session joined room", "name", name)
	s.room.Broadcast(NewNote(fmt.Sprintf("%s joined \"%s\".", name, s.room.Name())))
}

// HandleChat broadcasts text under the session's name, null if unset.
func (s *Session) HandleChat(text string) {
	s.room.Broadcast(NewChatMessage(s.namePtr(), text))
}

// HandleJoke fetches a joke and broadcasts it as the server.
func (s *Session) HandleJoke(ctx context.Context) error {
	if s.jokes == nil {
		return fmt.Errorf("%w: no provider configured", ErrJokeUnavailable)
	}

	joke, err := s.jokes.Joke(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrJokeUnavailable, err)
	}

	server := ServerName
	s.room.Broadcast(NewChatMessage(&server, joke))
	return nil
}

// ShowMembers broadcasts the room's member listing.
func (s *Session) ShowMembers() {
	s.room.Broadcast(NewMemberList(s.namePtr(), s.room.Members()))
}

// HandleClose leaves the room and announces the departure to the remaining
// members. Only the first call has any effect. A session that never joined is
// announced as "null".
func (s *Session) HandleClose() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	name := s.name
	s.mu.Unlock()

	s.room.Leave(s)

	display := "null"
	if name != nil {
		display = *name
	}
	s.log.Info("Session left room", "name", display)
	s.room.Broadcast(NewNote(fmt.Sprintf("%s left %s.", display, s.room.Name())))
}
