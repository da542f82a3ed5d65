package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds the command logger. The text format is meant for humans,
// json for log collectors.
func NewLogger(level string, format string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	switch format {
	case "text":
		return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
			Level(lvl).
			With().
			Timestamp().
			Logger(), nil
	case "json":
		return zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Logger(), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", format)
	}
}
