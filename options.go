package refsync

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive(name string, v time.Duration) {
	if v <= 0 {
		panic(fmt.Sprintf("refsync: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("refsync: %s must not be empty", name))
	}
}

// Option configures a Syncer during construction via New.
//
// Several With* functions panic on invalid input (empty names or paths,
// non-positive durations). Option values are normally constants in the
// calling code, so an invalid one is a programmer error; runtime input should
// go through LoadConfigFile, which returns errors instead.
type Option func(*syncConfig)

// WithFileName sets the base name of the reference file, e.g. "proj.db".
// Required. Panics if name is empty or contains a directory.
func WithFileName(name string) Option {
	requireNonEmpty("file name", name)
	if name != filepath.Base(name) {
		panic(fmt.Sprintf("refsync: file name must not contain a directory, got %q", name))
	}
	return func(c *syncConfig) {
		c.fileName = name
	}
}

// WithSearchPaths appends candidate source directories. Candidates are tried
// in the order they were added across all WithSearchPaths and
// WithSearchPathsFromEnv options; the first directory holding the file wins.
// Panics if dirs is empty or holds an empty string.
func WithSearchPaths(dirs ...string) Option {
	if len(dirs) == 0 {
		panic("refsync: search paths must not be empty")
	}
	for _, d := range dirs {
		requireNonEmpty("search path", d)
	}
	dirs = append([]string(nil), dirs...)
	return func(c *syncConfig) {
		for _, d := range dirs {
			c.searchPaths = append(c.searchPaths, pathSource{dir: d})
		}
	}
}

// WithSearchPathsFromEnv appends the directories listed in the environment
// variable name (separated by os.PathListSeparator). The variable is read
// each time Ensure runs; an unset variable contributes nothing.
// Panics if name is empty.
func WithSearchPathsFromEnv(name string) Option {
	requireNonEmpty("search path environment variable", name)
	return func(c *syncConfig) {
		c.searchPaths = append(c.searchPaths, pathSource{env: name})
	}
}

// WithDestDir sets the shared directory that holds the copy. It is created
// with DefaultDirMode if missing; the lock file is dir + LockSuffix.
// Required. Panics if dir is empty.
func WithDestDir(dir string) Option {
	requireNonEmpty("destination directory", dir)
	return func(c *syncConfig) {
		c.destDir = dir
	}
}

// WithExtraSearchPaths appends directories to Result.SearchPaths after the
// destination directory, e.g. a grids directory the consumer should also
// search. They play no part in locating the source.
// Panics if any dir is empty.
func WithExtraSearchPaths(dirs ...string) Option {
	for _, d := range dirs {
		requireNonEmpty("extra search path", d)
	}
	dirs = append([]string(nil), dirs...)
	return func(c *syncConfig) {
		c.extraSearchPaths = append(c.extraSearchPaths, dirs...)
	}
}

// WithLockTimeout bounds how long Ensure waits for the provisioning lock.
// On expiry Ensure returns ErrLockTimeout.
//
// Default: DefaultLockTimeout (no bound beyond the context).
//
// Panics if d <= 0.
func WithLockTimeout(d time.Duration) Option {
	requirePositive("lock timeout", d)
	return func(c *syncConfig) {
		c.lockTimeout = d
	}
}

// WithLockRetryInterval sets how often a waiting caller polls the lock.
//
// Default: DefaultLockRetryInterval.
//
// Panics if d <= 0.
func WithLockRetryInterval(d time.Duration) Option {
	requirePositive("lock retry interval", d)
	return func(c *syncConfig) {
		c.lockRetryInterval = d
	}
}

// WithSQLiteVerify runs SQLite's quick_check on every fresh copy before
// Ensure returns. A copy that fails is removed and Ensure returns ErrCorrupt.
func WithSQLiteVerify() Option {
	return func(c *syncConfig) {
		c.verifySQLite = true
	}
}

// WithLogger sets the logger for this Syncer. A nil logger falls back to the
// process-wide logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(c *syncConfig) {
		c.logger = l
	}
}
