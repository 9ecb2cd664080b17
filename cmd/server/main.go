// Package main starts the chat relay server and handles termination.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tyrowin/roomchat/internal/chat"
	"github.com/Tyrowin/roomchat/internal/server"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return exitConfig, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := server.LoadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(cfg.LogLevel)

	registry := chat.NewRegistry(logger)
	sessions := chat.NewFactory(registry, chat.NewHTTPJokeProvider(cfg.JokeURL, nil), logger)

	hub := server.NewHub(logger)
	server.StartHub(hub)

	mux := server.SetupRoutes(server.NewHandlers(hub, sessions, cfg, logger))
	httpServer := server.CreateServer(cfg.Port, mux)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.StartServer(httpServer, logger)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = hub.Shutdown(cfg.ShutdownTimeout)
			return exitRuntime, fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	code := exitOK
	if err := server.ShutdownServer(httpServer, cfg.ShutdownTimeout, logger); err != nil {
		code = exitRuntime
	}
	if err := hub.Shutdown(cfg.ShutdownTimeout); err != nil {
		return exitRuntime, fmt.Errorf("hub shutdown: %w", err)
	}
	return code, nil
}
