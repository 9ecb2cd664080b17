package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tyrowin/roomchat/internal/chat"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const readWait = 2 * time.Second

// newTestServer starts a hub and an httptest server routing to it. Both are
// stopped when the test ends.
func newTestServer(t *testing.T, jokes chat.JokeProvider, customize func(cfg *Config)) (*httptest.Server, *Hub) {
	t.Helper()

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	cfg := *NewConfig()
	cfg.AllowedOrigins = []string{"*"}
	if customize != nil {
		customize(&cfg)
	}

	hub := NewHub(log)
	StartHub(hub)
	sessions := chat.NewFactory(chat.NewRegistry(log), jokes, log)
	srv := httptest.NewServer(SetupRoutes(NewHandlers(hub, sessions, cfg, log)))

	t.Cleanup(func() {
		_ = hub.Shutdown(2 * time.Second)
		srv.Close()
	})
	return srv, hub
}

func buildWebSocketURL(srv *httptest.Server, room string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/" + room
}

// connectWebSocket dials url presenting origin.
func connectWebSocket(url, origin string) (*websocket.Conn, *http.Response, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	headers := http.Header{}
	headers.Set("Origin", origin)

	conn, resp, err := dialer.Dial(url, headers)
	if resp != nil {
		_ = resp.Body.Close()
	}
	return conn, resp, err
}

func dialRoom(t *testing.T, srv *httptest.Server, room string) *websocket.Conn {
	t.Helper()

	conn, _, err := connectWebSocket(buildWebSocketURL(srv, room), srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// joinRoom connects, joins as name and consumes the caller's own join note.
func joinRoom(t *testing.T, srv *httptest.Server, room, name string) *websocket.Conn {
	t.Helper()

	conn := dialRoom(t, srv, room)
	sendJSON(t, conn, map[string]any{"type": "join", "name": name})
	require.Equal(t, map[string]any{
		"type": "note",
		"text": name + ` joined "` + room + `".`,
	}, readMessage(t, conn))
	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(v))
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readWait)))
	var msg map[string]any
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readUntilError drains conn and returns the error that ended it.
func readUntilError(t *testing.T, conn *websocket.Conn) error {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readWait)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return err
		}
	}
}

// expectNoMessage asserts nothing arrives within timeout. The connection is
// unusable afterwards.
func expectNoMessage(t *testing.T, conn *websocket.Conn, timeout time.Duration) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(timeout)))
	_, data, err := conn.ReadMessage()
	require.Error(t, err, "unexpected message: %s", data)
	require.True(t, isTimeout(err), "expected timeout, got %v", err)
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	te, ok := err.(timeout)
	return ok && te.Timeout()
}
