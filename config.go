package refsync

import (
	"context"
	"log/slog"
	"time"

	"github.com/giantswarm/refsync/internal/locate"
	"github.com/giantswarm/refsync/internal/logging"
	"github.com/giantswarm/refsync/internal/provision"
	"github.com/giantswarm/refsync/internal/sqlitecheck"
)

// pathSource is one search path entry: a literal directory or the name of a
// path-list environment variable resolved at Ensure time.
type pathSource struct {
	dir string
	env string
}

// syncConfig holds everything the options set.
type syncConfig struct {
	fileName          string
	searchPaths       []pathSource
	destDir           string
	extraSearchPaths  []string
	lockTimeout       time.Duration
	lockRetryInterval time.Duration
	verifySQLite      bool
	logger            *slog.Logger

	// copier overrides the copy primitive; only set from tests.
	copier provision.Copier
}

func defaultSyncConfig() syncConfig {
	return syncConfig{
		lockTimeout:       DefaultLockTimeout,
		lockRetryInterval: DefaultLockRetryInterval,
	}
}

func (c syncConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.Logger()
}

// resolveSearchPaths expands environment entries in declaration order.
func (c syncConfig) resolveSearchPaths() []string {
	var dirs []string
	for _, p := range c.searchPaths {
		if p.env != "" {
			dirs = append(dirs, locate.FromEnv(p.env)...)
			continue
		}
		dirs = append(dirs, p.dir)
	}
	return dirs
}

// toProvisionConfig snapshots the configuration for one Ensure call.
func (c syncConfig) toProvisionConfig() provision.Config {
	logger := c.log()
	cfg := provision.Config{
		FileName:          c.fileName,
		SearchPaths:       c.resolveSearchPaths(),
		DestDir:           c.destDir,
		LockTimeout:       c.lockTimeout,
		LockRetryInterval: c.lockRetryInterval,
		Copier:            c.copier,
		Logger:            logger,
	}
	if c.verifySQLite {
		cfg.Verify = func(ctx context.Context, path string) error {
			return sqlitecheck.QuickCheck(ctx, path, logger)
		}
	}
	return cfg
}

// searchPathsFor lists the directories a consumer should search once the
// copy is in place: the destination directory first, then the extras.
func (c syncConfig) searchPathsFor() []string {
	paths := make([]string, 0, 1+len(c.extraSearchPaths))
	paths = append(paths, c.destDir)
	return append(paths, c.extraSearchPaths...)
}
