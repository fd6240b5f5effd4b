package vkboot

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// LevelTrace is below slog.LevelDebug. The diagnostics channel uses it for
// verbose driver messages.
const LevelTrace = slog.LevelDebug - 4

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine,
// including driver threads invoking the diagnostics callback.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for vkboot and its driver packages.
// By default, vkboot produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by vkboot:
//   - [LevelTrace]: verbose driver diagnostics
//   - [slog.LevelDebug]: negotiation detail (requested layers and extensions)
//   - [slog.LevelInfo]: lifecycle events (instance created, destroyed)
//   - [slog.LevelWarn]: driver warnings, performance messages, skipped names
//   - [slog.LevelError]: driver errors reported through the debug channel
//
// Example:
//
//	vkboot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: vkboot.LevelTrace,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	for _, d := range openDrivers() {
		propagateLogger(d, l)
	}
}

// Logger returns the current logger used by vkboot.
// Driver subpackages call this to share the same configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by drivers that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a driver if it implements
// the loggerSetter interface. Called from both SetLogger and OpenDriver
// so that an opened driver always has the current logger.
func propagateLogger(d Driver, l *slog.Logger) {
	if ls, ok := d.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
