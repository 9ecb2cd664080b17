package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/mama165/sdk-go/logs"
)

var errPeerGone = errors.New("peer gone")

// recorder captures everything sent to one fake peer.
type recorder struct {
	mu   sync.Mutex
	raw  []string
	fail bool
}

func (r *recorder) send(data []byte) error {
	if r.fail {
		return errPeerGone
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = append(r.raw, string(data))
	return nil
}

func (r *recorder) messages(t *testing.T) []map[string]any {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]map[string]any, 0, len(r.raw))
	for _, raw := range r.raw {
		var msg map[string]any
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			t.Fatalf("decode sent message %q: %v", raw, err)
		}
		out = append(out, msg)
	}
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.raw)
}

func newTestFactory(jokes JokeProvider) *Factory {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return NewFactory(NewRegistry(log), jokes, log)
}
