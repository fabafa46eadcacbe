package refsync

import (
	"log/slog"

	"github.com/giantswarm/refsync/internal/logging"
)

// SetLogger replaces the process-wide logger used by every Syncer that was
// not given its own logger via WithLogger.
//
// If l is nil, the logger resets to slog.Default() with a "component"
// attribute. Call SetLogger(nil) after slog.SetDefault() to pick up the new
// default. Safe for concurrent use.
//
// Example:
//
//	refsync.SetLogger(myLogger.With("component", "refsync"))
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}
