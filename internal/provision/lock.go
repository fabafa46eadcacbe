package provision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
)

// acquireFileLock takes an exclusive advisory lock on lockPath, polling every
// retry until it succeeds or ctx is done.
func acquireFileLock(ctx context.Context, lockPath string, retry time.Duration) (*flock.Flock, error) {
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, retry)
	if err != nil {
		return nil, fmt.Errorf("acquiring file lock %s: %w", lockPath, err)
	}

	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring file lock %s: %w", lockPath, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring file lock %s: lock not acquired", lockPath)
	}

	return fl, nil
}

// releaseFileLock unlocks and closes fl. The lock file stays on disk:
// removing it could orphan a lock another process has just taken on the
// same inode. Errors are only logged.
func releaseFileLock(logger *slog.Logger, fl *flock.Flock) {
	if fl == nil {
		return
	}
	if err := fl.Close(); err != nil {
		logger.Debug("failed to release file lock", "lock_path", fl.Path(), "err", err)
	}
}
