package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// initLogger configures the global slog handler from flags: text or JSON
// output, gated at the requested level. Mirrors the --log-level/--log-text
// flags the root command exposes; slog.SetDefault makes the result the
// logger every package in this module reaches for via the top-level
// slog.InfoContext/WarnContext/DebugContext calls.
func initLogger(flags *cmdFlags) error {
	level, err := parseLogLevel(flags.LogLevel)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if flags.TextFormat {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", raw, err)
	}

	return level, nil
}
