// Package logging holds the process-wide refsync logger.
package logging

import (
	"log/slog"
	"sync/atomic"
)

// logger is the logger installed with SetLogger. Nil means none was set.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the component attribute so Logger
// does not allocate on every call. SetLogger clears it, which is how callers
// pick up a later slog.SetDefault.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the installed logger, or a cached logger derived from
// slog.Default() tagged with component=refsync. Safe for concurrent use and
// never nil.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "refsync")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	// Lost the race; prefer the winner, but never return nil if a concurrent
	// SetLogger cleared it in between.
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// SetLogger installs l as the process-wide logger. A nil l restores the
// default, re-derived from slog.Default() on the next Logger call.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
