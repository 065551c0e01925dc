package atelier

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records. Enabled
// returns false so callers skip formatting entirely, making disabled
// logging effectively free.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so SetLogger
// can race with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for atelier and the packages built on
// it (dot, compose, studio share it through Logger). By default nothing
// is logged. Pass nil to restore the silent default.
//
// Levels used by this module:
//   - [slog.LevelDebug]: per-operation diagnostics (layout passes,
//     rasterizer spans, watch events)
//   - [slog.LevelInfo]: lifecycle events (piece rendered, file written)
//   - [slog.LevelWarn]: recoverable issues (skipped source, fallback font)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current module logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
