// Package server exposes HTTP handlers, including WebSocket upgrades, health
// checks, and the built-in test page.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Tyrowin/roomchat/internal/chat"
	"github.com/gorilla/websocket"
)

// Handlers serves the chat endpoints.
type Handlers struct {
	hub      *Hub
	sessions *chat.Factory
	cfg      Config
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandlers wires the handlers to a hub and a session factory.
func NewHandlers(hub *Hub, sessions *chat.Factory, cfg Config, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	cfg = sanitizeConfig(cfg)
	origins := newOriginPolicy(cfg.AllowedOrigins, log)
	return &Handlers{
		hub:      hub,
		sessions: sessions,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.check,
		},
		log: log,
	}
}

// ChatHandler upgrades GET /chat/{room} to a WebSocket and hands the
// connection, bound to a new session in that room, to the hub.
func (h *Handlers) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
		return
	}

	roomName := r.PathValue("room")
	if roomName == "" {
		http.Error(w, "room name is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", "error", err, "addr", r.RemoteAddr)
		return
	}

	client := NewClient(conn, h.hub, h.sessions, roomName, r.RemoteAddr, h.cfg)

	// The hub launches the pump goroutines.
	h.hub.Register(client)
}

// HealthHandler provides a simple health check endpoint that returns server status.
func (h *Handlers) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Chat server is running! rooms=%d clients=%d",
		h.sessions.Registry().Len(), h.hub.ClientCount())
}

// TestPageHandler serves an HTML page for trying the chat protocol in a browser.
func (h *Handlers) TestPageHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if _, err := fmt.Fprint(w, testPage); err != nil {
		h.log.Warn("Error writing HTML response", "error", err)
	}
}

const testPage = `<!DOCTYPE html>
<html>
<head>
    <title>Chat Room Test</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        #messages {
            border: 1px solid #ccc;
            height: 300px;
            padding: 10px;
            overflow-y: scroll;
            margin: 10px 0;
            background-color: #f9f9f9;
        }
        input[type="text"] { padding: 5px; margin-right: 10px; }
        .note { color: gray; font-style: italic; }
        .server { color: purple; }
    </style>
</head>
<body>
    <h1>Chat Room Test</h1>

    <div>
        <input type="text" id="room" placeholder="room" value="lobby">
        <input type="text" id="name" placeholder="your name">
        <button onclick="connect()">Join</button>
    </div>

    <div id="messages"></div>

    <form onsubmit="sendChat(); return false;">
        <input type="text" id="text" placeholder="Say something, /joke or /members" size="50">
        <button type="submit">Send</button>
    </form>

    <script>
        let ws = null;
        const messages = document.getElementById('messages');

        function addLine(text, cls) {
            const line = document.createElement('div');
            line.className = cls || '';
            line.textContent = text;
            messages.appendChild(line);
            messages.scrollTop = messages.scrollHeight;
        }

        function connect() {
            const room = encodeURIComponent(document.getElementById('room').value);
            const name = document.getElementById('name').value;
            const scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
            ws = new WebSocket(scheme + location.host + '/chat/' + room);

            ws.onopen = function() {
                ws.send(JSON.stringify({type: 'join', name: name}));
            };

            ws.onmessage = function(evt) {
                const msg = JSON.parse(evt.data);
                if (msg.type === 'note') {
                    const text = Array.isArray(msg.text) ? 'members: ' + msg.text.join(', ') : msg.text;
                    addLine(text, 'note');
                } else {
                    addLine(msg.name + ': ' + msg.text, msg.name === 'Server' ? 'server' : '');
                }
            };

            ws.onclose = function(evt) {
                addLine('Connection closed' + (evt.reason ? ': ' + evt.reason : ''), 'note');
                ws = null;
            };
        }

        function sendChat() {
            const input = document.getElementById('text');
            if (ws && ws.readyState === WebSocket.OPEN && input.value) {
                ws.send(JSON.stringify({type: 'chat', text: input.value}));
                input.value = '';
            }
        }
    </script>
</body>
</html>`
