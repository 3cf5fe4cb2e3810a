// Package diag is a lightweight reimplementation of the teacher's
// textcolor.go leveled diagnostic print, backed by a real structured
// logger instead of a level-gated no-op.
package diag

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level mirrors the teacher's DW_COLOR_* enum in spirit: a small closed
// set of diagnostic categories the core's narrow-interface collaborators
// and the main loop report through.
type Level int

const (
	LevelInfo Level = iota
	LevelError
	LevelReceived
	LevelDecoded
	LevelDebug
)

// Logger wraps charmbracelet/log with the category set this receiver
// uses. The zero value is not usable; construct with New.
type Logger struct {
	base *log.Logger
}

// New creates a Logger writing to w at the given minimum level.
func New(w io.Writer, level Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})
	l.SetLevel(toCharmLevel(level))
	return &Logger{base: l}
}

// Default returns a Logger writing to stderr at LevelInfo, the
// receiver's normal run-time verbosity.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

func toCharmLevel(l Level) log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func (l *Logger) Info(msg string, kv ...any)  { l.base.Info(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.base.Error(msg, kv...) }
func (l *Logger) Debug(msg string, kv ...any) { l.base.Debug(msg, kv...) }

// Received logs a decoded-symbol or valid-frame event, the analogue of
// the teacher's DW_COLOR_REC / DW_COLOR_DECODED categories.
func (l *Logger) Received(msg string, kv ...any) {
	l.base.With("category", "received").Info(msg, kv...)
}
