// Package chatclient is a terminal client for the chat relay. It joins a room,
// sends typed lines as chat messages, and renders what the room broadcasts.
package chatclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client is one connection to a chat room.
type Client struct {
	conn *websocket.Conn
	out  io.Writer
	log  *slog.Logger
}

// ChatURL turns a server base URL (http or https) into the room's socket URL.
func ChatURL(serverURL, room string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	u.Path = "/chat/" + room
	u.RawPath = "/chat/" + url.PathEscape(room)
	return u.String(), nil
}

// Dial connects to room on serverURL and joins it as name. Rendered messages
// are written to out.
func Dial(ctx context.Context, serverURL, room, name string, out io.Writer, log *slog.Logger) (*Client, error) {
	wsURL, err := ChatURL(serverURL, room)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Origin", serverURL)

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if resp != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	c := &Client{conn: conn, out: out, log: log.With("room", room)}
	if err := c.write(map[string]string{"type": "join", "name": name}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("join: %w", err)
	}
	return c, nil
}

// Say sends a chat line. "/joke" and "/members" are interpreted by the server.
func (c *Client) Say(text string) error {
	return c.write(map[string]string{"type": "chat", "text": text})
}

func (c *Client) write(msg map[string]string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// Receive renders incoming messages until the connection ends. A normal or
// going-away close returns nil.
func (c *Client) Receive() error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return fmt.Errorf("server closed connection: %d %s", closeErr.Code, closeErr.Text)
			}
			return err
		}

		if err := Render(c.out, data); err != nil {
			c.log.Warn("Skipping unreadable message", "error", err)
		}
	}
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	return c.conn.Close()
}

type inbound struct {
	Name *string         `json:"name"`
	Type string          `json:"type"`
	Text json.RawMessage `json:"text"`
}
