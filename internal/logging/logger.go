// Package logging builds the diagnostic logger. Diagnostics are plain text on
// stderr and are never part of the status line.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// DefaultLevel hides informational messages such as a missing battery.
const DefaultLevel = zerolog.WarnLevel

// New returns a console logger writing to w at the named level. Unknown or
// empty level names fall back to DefaultLevel.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = DefaultLevel
	}
	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(lvl)
}
