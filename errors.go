package refsync

import (
	"github.com/giantswarm/refsync/internal/locate"
	"github.com/giantswarm/refsync/internal/provision"
	"github.com/giantswarm/refsync/internal/sentinel"
	"github.com/giantswarm/refsync/internal/sqlitecheck"
)

// Sentinel errors for inspection with errors.Is.
const (
	// ErrResourceUnavailable is returned by Ensure when none of the search
	// paths contains the reference file. Nothing is written in that case.
	ErrResourceUnavailable = locate.ErrResourceUnavailable

	// ErrLockTimeout is returned by Ensure when WithLockTimeout elapses
	// before the provisioning lock is acquired.
	ErrLockTimeout = provision.ErrLockTimeout

	// ErrCorrupt is returned by Ensure with WithSQLiteVerify when the fresh
	// copy fails SQLite's quick_check. The bad copy is removed.
	ErrCorrupt = sqlitecheck.ErrCorrupt

	// ErrVersionMismatch is returned by CheckVersion.
	ErrVersionMismatch = sentinel.Error("library version mismatch")

	// ErrInvalidConfig is returned by LoadConfigFile and ParseConfig for
	// malformed or incomplete configuration.
	ErrInvalidConfig = sentinel.Error("invalid refsync configuration")
)
