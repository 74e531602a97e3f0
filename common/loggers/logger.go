// Package loggers provides the logger used throughout the build.
package loggers

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	jww "github.com/spf13/jwalterweatherman"
	"go.uber.org/atomic"
)

// Logger logs the build and the dev server.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)

	// WarnCount returns the number of warnings logged so far.
	WarnCount() int
}

type logger struct {
	*jww.Notepad
	warnCount *atomic.Int64
}

// NewLogger creates a new Logger writing to out at or above the given
// threshold.
func NewLogger(threshold jww.Threshold, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &logger{
		Notepad:   jww.NewNotepad(threshold, jww.LevelTrace, out, io.Discard, "", log.Ldate|log.Ltime),
		warnCount: atomic.NewInt64(0),
	}
}

// NewDefault creates the Logger used by the command line, warnings and up
// to stderr.
func NewDefault() Logger {
	return NewLogger(jww.LevelWarn, os.Stderr)
}

// NewInfoLogger logs info and up to stderr.
func NewInfoLogger() Logger {
	return NewLogger(jww.LevelInfo, os.Stderr)
}

// NewBufferLogger creates a Logger that writes everything to buf.
// Mostly useful in tests.
func NewBufferLogger(buf *bytes.Buffer) Logger {
	return NewLogger(jww.LevelDebug, buf)
}

// NewDiscard creates a Logger that drops all output.
func NewDiscard() Logger {
	return NewLogger(jww.LevelError, io.Discard)
}

func (l *logger) Debugf(format string, v ...any) {
	l.DEBUG.Printf(format, v...)
}

func (l *logger) Infof(format string, v ...any) {
	l.INFO.Printf(format, v...)
}

func (l *logger) Warnf(format string, v ...any) {
	l.warnCount.Inc()
	l.WARN.Print(color.YellowString(format, v...))
}

func (l *logger) Errorf(format string, v ...any) {
	l.ERROR.Print(color.RedString(format, v...))
}

func (l *logger) WarnCount() int {
	return int(l.warnCount.Load())
}

// Highlight marks s as the offending part of a log message.
func Highlight(s string) string {
	return color.RedString("%s", s)
}
