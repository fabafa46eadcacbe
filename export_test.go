package refsync

import (
	"time"

	"github.com/giantswarm/refsync/internal/provision"
)

// ConfigSnapshot holds a copy of syncConfig fields for test assertions.
type ConfigSnapshot struct {
	FileName          string
	SearchPaths       []string // resolved at snapshot time
	DestDir           string
	ExtraSearchPaths  []string
	LockTimeout       time.Duration
	LockRetryInterval time.Duration
	VerifySQLite      bool
	HasLogger         bool
}

// ApplyOptionsForTesting applies opts to a default config and snapshots it.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultSyncConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return ConfigSnapshot{
		FileName:          cfg.fileName,
		SearchPaths:       cfg.resolveSearchPaths(),
		DestDir:           cfg.destDir,
		ExtraSearchPaths:  cfg.extraSearchPaths,
		LockTimeout:       cfg.lockTimeout,
		LockRetryInterval: cfg.lockRetryInterval,
		VerifySQLite:      cfg.verifySQLite,
		HasLogger:         cfg.logger != nil,
	}
}

// WithCopierForTesting replaces the copy primitive.
func WithCopierForTesting(fn func(src, dst string) error) Option {
	return func(c *syncConfig) {
		c.copier = provision.CopierFunc(fn)
	}
}

// DefaultCopyForTesting is the production copy primitive.
func DefaultCopyForTesting(src, dst string) error {
	return provision.FileCopier.Copy(src, dst)
}

// SetExitForTesting swaps the function MustEnsure uses to terminate the
// process and returns a restore func.
func SetExitForTesting(fn func(int)) (restore func()) {
	prev := exit
	exit = fn
	return func() { exit = prev }
}
