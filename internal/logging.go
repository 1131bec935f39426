package internal

import (
	"os"

	"github.com/rs/zerolog"
)

// GetLogger returns a structured logger writing to stderr. Library
// packages never call this themselves — they accept a zerolog.Logger
// (see NopLogger for their default) — only cmd/gtfsvalidate wires a real
// one at startup.
func GetLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// NopLogger is the default a library package falls back to when no
// logger was injected, so the engine is silent unless a caller opts in.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}
