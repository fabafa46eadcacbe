package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/giantswarm/refsync/internal/fileutil"
	"github.com/giantswarm/refsync/internal/locate"
	"github.com/giantswarm/refsync/internal/sentinel"
	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when Config.LockTimeout elapses before the
// provisioning lock could be taken.
const ErrLockTimeout = sentinel.Error("timed out waiting for provisioning lock")

// Result describes the outcome of Ensure.
type Result struct {
	Path       string // Path of the fresh copy
	SourcePath string // Source file the copy mirrors
	Copied     bool   // true if this call wrote the copy, false if it was already fresh
}

// Ensure makes sure DestDir/FileName is a fresh copy of the first FileName
// found in SearchPaths and returns where it lives.
//
// The fresh path takes no lock. The stale path blocks on the lock until it
// is acquired, LockTimeout elapses, or ctx is done. When no search path holds
// the file, Ensure returns an error wrapping locate.ErrResourceUnavailable
// and leaves the filesystem untouched.
func Ensure(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	src, err := locate.Find(cfg.FileName, cfg.SearchPaths)
	if err != nil {
		return nil, fmt.Errorf("locate source: %w", err)
	}

	logger := cfg.logger()
	dst := cfg.destPath()
	res := &Result{Path: dst, SourcePath: src}

	stale, err := needsRefresh(src, dst)
	if err != nil {
		return nil, err
	}
	if !stale {
		logger.Debug("reference copy is fresh", "source", src, "dest", dst)
		return res, nil
	}

	lockPath := cfg.lockPath()
	if err := fileutil.EnsureDirForFile(lockPath); err != nil {
		return nil, fmt.Errorf("prepare lock: %w", err)
	}

	logger.Debug("acquiring provisioning lock", "lock_path", lockPath)
	lock, err := lockWithTimeout(ctx, cfg, lockPath)
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	defer releaseFileLock(logger, lock)

	// Re-check: a peer may have refreshed the copy while we waited.
	stale, err = needsRefresh(src, dst)
	if err != nil {
		return nil, err
	}
	if !stale {
		logger.Info("reference copy refreshed while waiting", "source", src, "dest", dst)
		return res, nil
	}

	if err := copyLocked(ctx, cfg, src, dst); err != nil {
		return nil, err
	}

	res.Copied = true
	return res, nil
}

// copyLocked writes and optionally verifies the copy. The caller must hold
// the provisioning lock.
func copyLocked(ctx context.Context, cfg Config, src, dst string) error {
	logger := cfg.logger()
	startTime := time.Now()

	if err := fileutil.EnsureDir(cfg.DestDir); err != nil {
		return fmt.Errorf("prepare destination: %w", err)
	}

	logger.Info("copying reference file", "source", src, "dest", cfg.DestDir)
	if err := cfg.copier().Copy(src, dst); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}

	if cfg.Verify != nil {
		if err := cfg.Verify(ctx, dst); err != nil {
			// A bad copy left in place would pass the next freshness check.
			if rmErr := os.Remove(dst); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				logger.Warn("failed to remove unverified copy", "dest", dst, "err", rmErr)
			}
			return fmt.Errorf("verify %s: %w", dst, err)
		}
	}

	logger.Info("reference file copied", "dest", dst, "elapsed", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// lockWithTimeout acquires the lock, bounding the wait by cfg.LockTimeout
// when it is set. Expiry of that bound is reported as ErrLockTimeout; plain
// cancellation of ctx is reported as the context error.
func lockWithTimeout(ctx context.Context, cfg Config, lockPath string) (*flock.Flock, error) {
	lockCtx := ctx
	if cfg.LockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeoutCause(ctx, cfg.LockTimeout, ErrLockTimeout)
		defer cancel()
	}

	fl, err := acquireFileLock(lockCtx, lockPath, cfg.retryInterval())
	if err != nil {
		if ctx.Err() == nil && errors.Is(context.Cause(lockCtx), ErrLockTimeout) {
			return nil, fmt.Errorf("%w after %s: %s", ErrLockTimeout, cfg.LockTimeout, lockPath)
		}
		return nil, err
	}
	return fl, nil
}
