// Package logging configures the process-wide slog logger.
//
// Production uses JSON on stdout; development uses tint's coloured handler on
// stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/receipt-split/backend/config"
)

// Setup installs the default logger for cfg.
func Setup(cfg config.LogConfig) {
	slog.SetDefault(New(cfg, os.Stdout, os.Stderr))
}

// New builds a logger writing JSON to jsonOut or coloured text to textOut.
func New(cfg config.LogConfig, jsonOut, textOut io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)

	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(tint.NewHandler(textOut, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}

	return slog.New(slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel maps debug, warn and error to their slog levels; anything else is info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
