// Package logging builds the slog logger used by the command-line tool and
// bridges decoder warnings into it.
package logging

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/alttpo/sexp/v2"
)

var ErrWriterRequired = errors.New("logging: Writer is required")

// Options configures New.
type Options struct {
	Level  slog.Level
	Writer io.Writer
}

// New returns a text logger on opts.Writer without timestamps; the tool is
// interactive and timestamps only add noise to stderr.
func New(opts Options) (*slog.Logger, error) {
	if opts.Writer == nil {
		return nil, ErrWriterRequired
	}
	h := slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{
		Level: opts.Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h), nil
}

// ParseLevel accepts debug, info, warn or error in any case; "" is info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// WarningHandler forwards decoder warnings to logger at warn level.
func WarningHandler(logger *slog.Logger) sexp.WarningHandler {
	return func(w sexp.Warning) {
		logger.Warn(w.Message, "code", string(w.Code), "offset", w.Offset)
	}
}

// LogError records a fatal transcoding error with its code and offset when it
// carries them.
func LogError(logger *slog.Logger, msg string, err error) {
	var e *sexp.Error
	if errors.As(err, &e) {
		logger.Error(msg, "error", e.Message, "code", string(e.Code), "offset", e.Offset)
		return
	}
	logger.Error(msg, "error", err)
}
