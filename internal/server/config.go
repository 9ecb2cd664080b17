// Package server provides configuration helpers that define runtime defaults,
// validation, and environment/flag loading for the chat service.
package server

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	defaultPort            = ":8080"
	defaultMaxMessageSize  = 1024
	defaultSendBufferSize  = 256
	defaultLogLevel        = "INFO"
	defaultShutdownTimeout = 10 * time.Second
)

var validate = validator.New()

// Config holds the server configuration settings including security controls.
type Config struct {
	Port            string        `env:"SERVER_PORT"      envDefault:":8080"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS"  envDefault:"http://localhost:8080" envSeparator:","`
	MaxMessageSize  int64         `env:"MAX_MESSAGE_SIZE" envDefault:"1024"`
	SendBufferSize  int           `env:"SEND_BUFFER_SIZE" envDefault:"256"`
	JokeURL         string        `env:"JOKE_URL"         envDefault:"https://icanhazdadjoke.com/" validate:"required,url"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// NewConfig creates a Config instance populated with default values for all settings.
func NewConfig() *Config {
	var cfg Config
	// Parsing against an empty environment only applies the envDefault tags.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	cfg = sanitizeConfig(cfg)
	return &cfg
}

// LoadConfig reads the environment, then lets command-line flags override it.
func LoadConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Port, "addr", cfg.Port, "HTTP listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (DEBUG, INFO, WARN, ERROR)")
	fs.StringVar(&cfg.JokeURL, "joke-url", cfg.JokeURL, "joke API endpoint")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg = sanitizeConfig(cfg)
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func sanitizeConfig(cfg Config) Config {
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaultMaxMessageSize
	}

	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = defaultSendBufferSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	cfg.JokeURL = strings.TrimSpace(cfg.JokeURL)
	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOrigins)

	return cfg
}
