package provision

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/giantswarm/refsync/internal/fileutil"
)

// DefaultLockRetryInterval is used when Config.LockRetryInterval is zero.
const DefaultLockRetryInterval = 50 * time.Millisecond

// LockSuffix turns the destination directory path into the lock file path.
const LockSuffix = ".lock"

// Copier performs the copy from a located source to the destination path.
// Implementations must leave dst either untouched or complete.
type Copier interface {
	Copy(src, dst string) error
}

// CopierFunc adapts a plain function to Copier.
type CopierFunc func(src, dst string) error

// Copy calls f(src, dst).
func (f CopierFunc) Copy(src, dst string) error { return f(src, dst) }

// FileCopier is the default Copier: an fsynced temp-file-and-rename copy
// that keeps the source modification time.
var FileCopier Copier = CopierFunc(func(src, dst string) error {
	return fileutil.CopyFile(src, dst, &fileutil.CopyFileOptions{
		Sync:            true,
		Atomic:          true,
		PreserveModTime: true,
	})
})

// VerifyFunc inspects a freshly written copy. A non-nil error discards it.
type VerifyFunc func(ctx context.Context, path string) error

// Config describes one provisioned file.
type Config struct {
	FileName          string        // Base name of the reference file, e.g. "proj.db"
	SearchPaths       []string      // Candidate source directories, in priority order
	DestDir           string        // Shared directory holding the copy
	LockTimeout       time.Duration // Bound on the lock wait; zero waits until ctx is done
	LockRetryInterval time.Duration // Poll interval while the lock is held elsewhere (zero uses DefaultLockRetryInterval)
	Copier            Copier        // Copy primitive (nil uses FileCopier)
	Verify            VerifyFunc    // Optional post-copy check
	Logger            *slog.Logger  // Logger for operational messages (nil uses slog.Default)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) copier() Copier {
	if c.Copier != nil {
		return c.Copier
	}
	return FileCopier
}

func (c Config) retryInterval() time.Duration {
	if c.LockRetryInterval > 0 {
		return c.LockRetryInterval
	}
	return DefaultLockRetryInterval
}

// destPath is where the copy lives.
func (c Config) destPath() string {
	return filepath.Join(c.DestDir, c.FileName)
}

// lockPath sits beside the destination directory, not inside it, so the
// directory can be created under the lock.
func (c Config) lockPath() string {
	return filepath.Clean(c.DestDir) + LockSuffix
}

// validate reports the first missing or invalid field.
func (c Config) validate() error {
	if c.FileName == "" {
		return errors.New("file name must not be empty")
	}
	if c.FileName != filepath.Base(c.FileName) {
		return errors.New("file name must be a base name without directories")
	}
	if c.DestDir == "" {
		return errors.New("destination dir must not be empty")
	}
	if c.LockTimeout < 0 {
		return errors.New("lock timeout must not be negative")
	}
	return nil
}
