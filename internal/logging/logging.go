// Package logging configures the process-wide zerolog logger.
//
// While the TUI runs it owns the terminal, so diagnostics go to a log file.
// Headless commands log to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultPath resolves the log file path in priority order:
// 1. NANOCLASS_LOG environment variable
// 2. $XDG_STATE_HOME/nanoclass/nanoclass.log
// 3. ~/.local/state/nanoclass/nanoclass.log
func DefaultPath() (string, error) {
	if p := os.Getenv("NANOCLASS_LOG"); p != "" {
		return p, nil
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "nanoclass", "nanoclass.log"), nil
}

// SetupFile points the global logger at the file at path, creating it and
// its directory if needed. The returned closer flushes and closes the file.
func SetupFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.Logger = New(f)
	return f, nil
}

// SetupConsole sends human-readable logs to stderr.
func SetupConsole() {
	log.Logger = New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// New builds a timestamped logger writing to w at the level named by
// NANOCLASS_LOG_LEVEL (default info).
func New(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if s := os.Getenv("NANOCLASS_LOG_LEVEL"); s != "" {
		if l, err := zerolog.ParseLevel(s); err == nil {
			level = l
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
