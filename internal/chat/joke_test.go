package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPJokeProvider_Joke(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			http.Error(w, "want json", http.StatusNotAcceptable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","joke":"I only know 25 letters of the alphabet. I don't know y.","status":200}`))
	}))
	defer srv.Close()

	joke, err := NewHTTPJokeProvider(srv.URL, srv.Client()).Joke(context.Background())

	req.NoError(err)
	req.Equal("I only know 25 letters of the alphabet. I don't know y.", joke)
}

func TestHTTPJokeProvider_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			},
		},
		{
			name: "bad body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
		},
		{
			name: "empty joke",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"joke":"  "}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			joke, err := NewHTTPJokeProvider(srv.URL, nil).Joke(context.Background())
			require.Error(t, err)
			require.Empty(t, joke)
		})
	}
}

func TestHTTPJokeProvider_Canceled_Context(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"joke":"late"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPJokeProvider(srv.URL, nil).Joke(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
