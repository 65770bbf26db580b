package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leondli/npsboard/internal/infrastructure/config"
)

var (
	mu      sync.Mutex
	current config.LogConfig
)

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Init initializes the global zerolog logger
func Init(cfg *config.LogConfig) {
	mu.Lock()
	current = *cfg
	mu.Unlock()

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var (
		output  io.Writer = os.Stdout
		openErr error
	)
	switch cfg.Output {
	case "stderr":
		output = os.Stderr
	case "file":
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			openErr = err
		} else {
			output = file
		}
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Caller().Logger()

	if openErr != nil {
		log.Warn().Err(openErr).Str("file", cfg.FilePath).Msg("Cannot open log file, logging to stdout")
	}
}

// Reload applies a changed log level at runtime. Output and format are bound
// to loggers already handed out, so changing them needs a restart.
func Reload(cfg *config.LogConfig) {
	mu.Lock()
	prev := current
	current.Level = cfg.Level
	mu.Unlock()

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	if cfg.Level != prev.Level {
		log.Info().Str("from", prev.Level).Str("to", cfg.Level).Msg("Log level changed")
	}
	if cfg.Output != prev.Output || cfg.Format != prev.Format || cfg.FilePath != prev.FilePath {
		log.Warn().Msg("Log output or format changed, restart to apply")
	}
}

// Watch keeps the log level in step with config hot reloads
func Watch() {
	config.OnChange(func(c *config.Config) {
		Reload(&c.Log)
	})
}

// NewLogger creates a new logger with the given component name
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
