package chat

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind is the outbound message discriminator.
type Kind string

const (
	KindChat Kind = "chat"
	KindNote Kind = "note"
)

// Inbound envelope type values.
const (
	TypeJoin       = "join"
	TypeChat       = "chat"
	TypeGetJoke    = "get-joke"
	TypeGetMembers = "get-members"
)

// Text shorthands that override the envelope type.
const (
	jokeShorthand    = "/joke"
	membersShorthand = "/members"
)

// ServerName is the identity jokes are attributed to.
const ServerName = "Server"

var validate = validator.New()

// Command is one decoded inbound message. The set of implementations is closed.
type Command interface {
	commandType() string
}

// Join binds a display name to the session and enters the room.
type Join struct {
	Name *string `validate:"required"`
}

// Chat is a line of text for the room.
type Chat struct {
	Text *string `validate:"required"`
}

// GetJoke asks the server to post a joke to the room.
type GetJoke struct{}

// GetMembers asks the server to post the member listing to the room.
type GetMembers struct{}

func (Join) commandType() string       { return TypeJoin }
func (Chat) commandType() string       { return TypeChat }
func (GetJoke) commandType() string    { return TypeGetJoke }
func (GetMembers) commandType() string { return TypeGetMembers }

// CommandType returns the wire type a command was decoded from.
func CommandType(cmd Command) string {
	return cmd.commandType()
}

type envelope struct {
	Type string  `json:"type"`
	Name *string `json:"name"`
	Text *string `json:"text"`
}

// ParseCommand decodes and validates a raw inbound envelope. Every failure
// wraps ErrProtocol.
func ParseCommand(raw []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed envelope: %v", ErrProtocol, err)
	}

	if env.Text != nil {
		switch *env.Text {
		case jokeShorthand:
			env.Type = TypeGetJoke
		case membersShorthand:
			env.Type = TypeGetMembers
		}
	}

	var cmd Command
	switch env.Type {
	case TypeJoin:
		cmd = Join{Name: env.Name}
	case TypeChat:
		cmd = Chat{Text: env.Text}
	case TypeGetJoke:
		return GetJoke{}, nil
	case TypeGetMembers:
		return GetMembers{}, nil
	default:
		return nil, fmt.Errorf("%w: bad message type %q", ErrProtocol, env.Type)
	}

	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: invalid %s message: %v", ErrProtocol, env.Type, err)
	}
	return cmd, nil
}

// Message is the outbound payload broadcast to room members. Text holds either
// a string or a []string (member listings).
type Message struct {
	Name *string
	Type Kind
	Text any
}

// NewChatMessage builds a chat line attributed to name, which may be nil.
func NewChatMessage(name *string, text string) Message {
	return Message{Name: name, Type: KindChat, Text: text}
}

// NewNote builds an anonymous system note.
func NewNote(text string) Message {
	return Message{Type: KindNote, Text: text}
}

// NewMemberList builds the note carrying the room's member names.
func NewMemberList(name *string, members []string) Message {
	if members == nil {
		members = []string{}
	}
	return Message{Name: name, Type: KindNote, Text: members}
}

type chatWire struct {
	Name *string `json:"name"`
	Type Kind    `json:"type"`
	Text any     `json:"text"`
}

type noteWire struct {
	Name *string `json:"name,omitempty"`
	Type Kind    `json:"type"`
	Text any     `json:"text"`
}

// MarshalJSON always emits name on chat lines, null when the sender never
// joined, and omits it on notes that carry none.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.Type == KindChat {
		return json.Marshal(chatWire(m))
	}
	return json.Marshal(noteWire(m))
}
