// Package refsync keeps a single, up-to-date copy of an externally owned
// reference file (for example a PROJ "proj.db" CRS database) in a shared
// scratch directory, safely under concurrent use by independent processes
// such as parallel test binaries.
//
// # Basic Usage
//
//	import "github.com/giantswarm/refsync"
//
//	s := refsync.New(
//	    refsync.WithFileName("proj.db"),
//	    refsync.WithSearchPathsFromEnv("PROJ_DATA"),
//	    refsync.WithSearchPaths("/usr/share/proj"),
//	    refsync.WithDestDir("gcore/tmp/proj_db_tmpdir"),
//	    refsync.WithExtraSearchPaths("proj_grids"),
//	)
//
//	res, err := s.Ensure(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Hand the resolved paths to the consumer explicitly.
//	setSearchPaths(res.SearchPaths)
//
// # Freshness and Locking
//
// The copy is fresh when it is at least as new as the source and has the same
// size. Ensure checks freshness without locking and returns at once when the
// copy is fresh. Otherwise it takes an exclusive advisory lock on
// "<dest dir>.lock", checks again, and copies only if the copy is still stale.
// Copies are written to a temp file and renamed into place.
//
// The lock wait is unbounded unless the context carries a deadline or
// WithLockTimeout is set. Advisory locks are released by the kernel when the
// holding process exits, so a crashed holder does not wedge other callers;
// a live but stuck holder does.
//
// # Configuration Files
//
// LoadConfigFile reads the same settings from YAML:
//
//	file: proj.db
//	destDir: gcore/tmp/proj_db_tmpdir
//	searchPathEnv: PROJ_DATA
//	searchPaths: [/usr/share/proj]
//	extraSearchPaths: [proj_grids]
//	lockTimeout: 2m
//	verifySQLite: true
package refsync
