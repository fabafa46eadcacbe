package refsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/giantswarm/refsync/internal/provision"
	"golang.org/x/sync/singleflight"
)

// exit terminates the process from MustEnsure. Replaced in tests.
var exit = os.Exit

// Result describes a provisioned reference file.
type Result struct {
	// Path is the fresh copy, DestDir/FileName.
	Path string

	// SourcePath is the located source file.
	SourcePath string

	// SearchPaths is the destination directory followed by any
	// WithExtraSearchPaths entries. Pass it to the consumer of the file
	// instead of mutating process-wide search paths.
	SearchPaths []string

	// Copied reports whether the copy was written while serving this call.
	// Callers coalesced onto the same in-process call share its value.
	Copied bool
}

// Syncer provisions one reference file. It is safe for concurrent use;
// concurrent Ensure calls on the same Syncer share a single provisioning
// attempt, and separate processes coordinate through the lock file.
type Syncer struct {
	cfg   syncConfig
	group singleflight.Group
}

// New returns a Syncer configured by opts. It performs no I/O.
//
// WithFileName and WithDestDir are required; their absence is reported by
// Ensure. Panics if any option receives an invalid value.
func New(opts ...Option) *Syncer {
	cfg := defaultSyncConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Syncer{cfg: cfg}
}

// Ensure is shorthand for New(opts...).Ensure(ctx).
func Ensure(ctx context.Context, opts ...Option) (*Result, error) {
	return New(opts...).Ensure(ctx)
}

// Ensure guarantees that, when it returns nil error, the destination holds a
// byte-identical copy of the source that is at least as new.
//
// It returns immediately without locking when the copy is already fresh.
// Otherwise it blocks on the cross-process lock until acquired, until ctx is
// done, or until the WithLockTimeout bound expires (ErrLockTimeout).
// Returns ErrResourceUnavailable, with nothing written, when no search path
// holds the file.
//
// A failed copy leaves any previous copy in place.
func (s *Syncer) Ensure(ctx context.Context) (*Result, error) {
	key := filepath.Join(s.cfg.destDir, s.cfg.fileName)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ensure %s: %w", key, context.Cause(ctx))
	}

	for {
		ch := s.group.DoChan(key, func() (any, error) {
			return provision.Ensure(ctx, s.cfg.toProvisionConfig())
		})

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("ensure %s: %w", key, context.Cause(ctx))
		case r := <-ch:
			if r.Err != nil {
				// The shared call belonged to a caller whose context ended;
				// ours is still live, so try again.
				if r.Shared && ctx.Err() == nil && isContextErr(r.Err) {
					continue
				}
				return nil, fmt.Errorf("ensure %s: %w", key, r.Err)
			}
			res, _ := r.Val.(*provision.Result)
			return &Result{
				Path:        res.Path,
				SourcePath:  res.SourcePath,
				SearchPaths: s.cfg.searchPathsFor(),
				Copied:      res.Copied,
			}, nil
		}
	}
}

// MustEnsure calls Ensure and terminates the process with status 1 and a
// diagnostic on stderr if it fails. Intended for TestMain and similar
// process-level setup where a missing reference file is fatal.
func (s *Syncer) MustEnsure(ctx context.Context) *Result {
	res, err := s.Ensure(ctx)
	if err != nil {
		s.cfg.log().Error("cannot provision reference file", "file", s.cfg.fileName, "err", err)
		fmt.Fprintf(os.Stderr, "refsync: %v\n", err)
		exit(1)
		return nil
	}
	return res
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
