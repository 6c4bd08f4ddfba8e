// Package observability provides structured logging and telemetry setup.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Log formats accepted by InitLogger.
const (
	FormatAuto     = "auto"
	FormatText     = "text"
	FormatJSON     = "json"
	FormatTerminal = "terminal"
)

// LevelForVerbosity maps the -v flag onto a slog level. Negative verbosity
// silences everything but errors; the default shows warnings.
func LevelForVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity < 0:
		return slog.LevelError
	case verbosity == 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// InitLogger configures the global slog logger writing to w.
func InitLogger(w io.Writer, format string, verbosity int) (*slog.Logger, error) {
	h, err := NewHandler(w, format, LevelForVerbosity(verbosity))
	if err != nil {
		return nil, err
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, nil
}

// NewHandler builds the slog handler for format. "auto" picks the colored
// terminal handler when w is a TTY and plain text otherwise.
func NewHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	switch strings.ToLower(format) {
	case FormatAuto, "":
		if isTerminal(w) {
			return newTerminalHandler(w, level), nil
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	case FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case FormatTerminal:
		return newTerminalHandler(w, level), nil
	}
	return nil, fmt.Errorf("unknown log format %q (want auto, text, json or terminal)", format)
}

func newTerminalHandler(w io.Writer, level slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor:    runtime.GOOS == "windows" || !isTerminal(w),
		Level:      level,
		TimeFormat: "15:04:05",
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
