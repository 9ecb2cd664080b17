// Package main is a terminal client for the chat relay.
//
// Usage:
//
//	chatclient -server http://localhost:8080 -room lobby -name alice
//
// Each line typed is sent to the room; "/joke" and "/members" are commands.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tyrowin/roomchat/internal/chatclient"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "chat server base URL")
	room := flag.String("room", "lobby", "room to join")
	name := flag.String("name", os.Getenv("USER"), "display name")
	logLevel := flag.String("log-level", "WARN", "log level (DEBUG, INFO, WARN, ERROR)")
	flag.Parse()

	if err := run(*serverURL, *room, *name, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "chatclient: %v\n", err)
		os.Exit(1)
	}
}

func run(serverURL, room, name, logLevel string) error {
	logger := logs.GetLoggerFromString(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := chatclient.Dial(ctx, serverURL, room, name, os.Stdout, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	received := make(chan error, 1)
	go func() {
		received <- client.Receive()
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-received:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "" {
				continue
			}
			if err := client.Say(line); err != nil {
				return fmt.Errorf("send: %w", err)
			}
		}
	}
}
