// Package logging builds the slog loggers shared by the command-line tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Mode selects a handler preset.
type Mode uint8

const (
	ModeDev Mode = iota
	ModeProd
	ModeSilence
)

var modeNames = map[Mode]string{
	ModeDev:     "dev",
	ModeProd:    "prod",
	ModeSilence: "silent",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode accepts "dev", "prod" or "silent". An empty string means dev.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeDev, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeDev, fmt.Errorf("unknown log mode %q", s)
}

// New returns a logger writing to stderr.
func New(mode Mode) *slog.Logger {
	return NewWithWriter(mode, os.Stderr)
}

// NewWithWriter returns a logger for mode writing to w.
func NewWithWriter(mode Mode, w io.Writer) *slog.Logger {
	return slog.New(buildHandler(mode, w))
}

func buildHandler(mode Mode, w io.Writer) slog.Handler {
	switch mode {
	case ModeProd:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
