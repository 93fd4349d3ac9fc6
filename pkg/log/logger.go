// Package log configures the zerolog logger shared by the pipeline stages.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// New creates a console logger at the given level. Unknown level strings
// fall back to info.
func New(level string) zerolog.Logger {
	return NewWithWriter(level, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// NewWithWriter creates a logger writing to w, which tests use to capture
// output.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// InstallWarningHandler routes solver warnings (for example
// ConvergenceWarning from the lasso coordinate descent) into the logger as
// structured warn events.
func InstallWarningHandler(logger zerolog.Logger) {
	errors.SetWarningHandler(func(w error) {
		ev := logger.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
	})
}
