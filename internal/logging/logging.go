// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for the global logger.
type Config struct {
	Level    string    // "debug", "info", ...; falls back to LOG_LEVEL, then info
	Output   io.Writer // defaults to os.Stderr
	Pretty   bool      // human-readable console output
	Instance string    // attached to every entry when set
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Str("service", "automute").Logger()
)

// Configure replaces the global logger. It may be called again, e.g. after a
// settings reload changes the level.
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Pretty {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(writer).With().Timestamp().Str("service", "automute")
	if cfg.Instance != "" {
		ctx = ctx.Str("instance", cfg.Instance)
	}

	mu.Lock()
	base = ctx.Logger()
	mu.Unlock()
}

// Base returns the configured logger.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger tagged with the component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
