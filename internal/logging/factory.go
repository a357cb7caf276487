package logging

import (
	"fmt"
	"io"
	"log/slog"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Config selects and tunes a logging backend.
type Config struct {
	Backend string
	Level   string
	Pretty  bool
	App     string
	Version string
}

// New builds the Logger named by c.Backend. Slog output goes to w as JSON,
// or as text when Pretty is set.
func New(c Config, w io.Writer) (Logger, error) {
	switch c.Backend {
	case "", BackendSlog:
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			level = slog.LevelInfo
		}
		opts := &slog.HandlerOptions{Level: level}

		var h slog.Handler = slog.NewJSONHandler(w, opts)
		if c.Pretty {
			h = slog.NewTextHandler(w, opts)
		}
		return NewSlogLogger(slog.New(h).With("service", c.App)), nil

	case BackendZap:
		z, err := NewZap(c)
		if err != nil {
			return nil, fmt.Errorf("zap logger: %w", err)
		}
		return NewZapLogger(z), nil

	default:
		return nil, fmt.Errorf("unknown log backend %q", c.Backend)
	}
}
