package refsync

import (
	"time"

	"github.com/giantswarm/refsync/internal/fileutil"
	"github.com/giantswarm/refsync/internal/provision"
)

// Default values applied by New.
const (
	// DefaultLockTimeout bounds the wait for the provisioning lock. Zero
	// means no bound beyond the context passed to Ensure.
	DefaultLockTimeout time.Duration = 0

	// DefaultLockRetryInterval is how often a waiting caller polls the
	// provisioning lock.
	DefaultLockRetryInterval = provision.DefaultLockRetryInterval

	// DefaultDirMode is the permission mode of a created destination
	// directory.
	DefaultDirMode = fileutil.DirMode

	// LockSuffix is appended to the destination directory path to name the
	// lock file.
	LockSuffix = provision.LockSuffix
)
