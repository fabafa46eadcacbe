package provision

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// isStale reports whether a copy with (dstMod, dstSize) must be refreshed
// from a source with (srcMod, srcSize).
func isStale(srcMod time.Time, srcSize int64, dstMod time.Time, dstSize int64) bool {
	return dstMod.Before(srcMod) || dstSize != srcSize
}

// needsRefresh stats both files and applies isStale. A missing destination
// is stale. The source must exist.
func needsRefresh(src, dst string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, fmt.Errorf("stat source %s: %w", src, err)
	}

	dstInfo, err := os.Stat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat destination %s: %w", dst, err)
	}

	return isStale(srcInfo.ModTime(), srcInfo.Size(), dstInfo.ModTime(), dstInfo.Size()), nil
}
