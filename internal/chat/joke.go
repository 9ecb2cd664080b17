package chat

//go:generate mockgen -source=joke.go -destination=mocks/mock_joke_provider.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultJokeURL is the public dad-joke API.
const DefaultJokeURL = "https://icanhazdadjoke.com/"

// JokeProvider produces a joke punchline or fails.
type JokeProvider interface {
	Joke(ctx context.Context) (string, error)
}

// JokeFunc adapts a function to JokeProvider.
type JokeFunc func(ctx context.Context) (string, error)

// Joke calls f.
func (f JokeFunc) Joke(ctx context.Context) (string, error) {
	return f(ctx)
}

// HTTPJokeProvider fetches jokes from a JSON API answering {"joke": "..."}.
type HTTPJokeProvider struct {
	url    string
	client *http.Client
}

// NewHTTPJokeProvider creates a provider for url. A nil client uses
// http.DefaultClient.
func NewHTTPJokeProvider(url string, client *http.Client) *HTTPJokeProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPJokeProvider{url: url, client: client}
}

type jokeResponse struct {
	Joke string `json:"joke"`
}

// Joke performs one request. There is no retry.
func (p *HTTPJokeProvider) Joke(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build joke request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch joke: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch joke: unexpected status %d", resp.StatusCode)
	}

	var body jokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode joke: %w", err)
	}
	if strings.TrimSpace(body.Joke) == "" {
		return "", fmt.Errorf("decode joke: empty joke")
	}
	return body.Joke, nil
}
