// Package logging builds the zerolog loggers used across the tool.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level. An empty name means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return lvl, nil
}

// New returns a human-readable console logger writing to w.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    true,
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

// NewJSON returns a JSON-lines logger for unattended runs.
func NewJSON(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
