package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/giantswarm/refsync/internal/sentinel"
)

// ErrEmptySrc is returned when a source path is empty.
const ErrEmptySrc = sentinel.Error("source path must not be empty")

// ErrEmptyDst is returned when a destination path is empty.
const ErrEmptyDst = sentinel.Error("destination path must not be empty")

// tempPattern names in-flight atomic copies. The leading dot keeps them out
// of casual directory listings.
const tempPattern = ".tmp-copy-*"

// CopyFileOptions configures file copy behavior.
type CopyFileOptions struct {
	Mode            *os.FileMode // Optional: permissions of the copy; nil keeps the source permissions
	Sync            bool         // If true, fsync dst before closing it
	Atomic          bool         // If true, write a temp file next to dst and rename it into place
	PreserveModTime bool         // If true, stamp dst with the source modification time
}

// CopyFile copies src to dst, creating parent directories of dst as needed.
// A nil opts copies in place with the source permissions.
//
// With Atomic set, readers of dst see either the previous file or the
// complete new one, never a prefix: data goes to a temp file in dst's
// directory, is synced, and is renamed over dst. On failure the temp file is
// removed and dst is left as it was.
//
// Copying a file onto itself (same inode, e.g. through a symlink) is a no-op.
func CopyFile(src, dst string, opts *CopyFileOptions) (retErr error) {
	if src == "" {
		return ErrEmptySrc
	}
	if dst == "" {
		return ErrEmptyDst
	}

	var o CopyFileOptions
	if opts != nil {
		o = *opts
	}

	srcFile, err := os.Open(src) //nolint:gosec // G304: paths are from controlled sources
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() {
		if closeErr := srcFile.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close source: %w", closeErr)
		}
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	same, err := sameFile(srcInfo, dst)
	if err != nil {
		return err
	}
	if same {
		return nil
	}

	if err := EnsureDirForFile(dst); err != nil {
		return fmt.Errorf("prepare destination: %w", err)
	}

	mode := srcInfo.Mode().Perm()
	if o.Mode != nil {
		mode = *o.Mode
	}

	dstFile, writePath, err := openDstFile(dst, mode, o.Atomic)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil && writePath != dst {
			_ = os.Remove(writePath)
		}
	}()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("copy: %w", err)
	}

	var modTime time.Time
	if o.PreserveModTime {
		modTime = srcInfo.ModTime()
	}

	return finalizeCopy(dstFile, writePath, dst, o.Sync || o.Atomic, modTime)
}

// sameFile reports whether dst already is the file described by srcInfo.
func sameFile(srcInfo os.FileInfo, dst string) (bool, error) {
	dstInfo, err := os.Stat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat destination: %w", err)
	}
	return os.SameFile(srcInfo, dstInfo), nil
}

// finalizeCopy syncs, closes, stamps and renames the written file. A zero
// modTime leaves the modification time as written.
func finalizeCopy(dstFile *os.File, writePath, dst string, doSync bool, modTime time.Time) error {
	// fsync before rename, or a crash could surface a renamed but empty file.
	if doSync {
		if err := dstFile.Sync(); err != nil {
			_ = dstFile.Close()
			return fmt.Errorf("sync: %w", err)
		}
	}

	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}

	// Stamp after close: the final write would otherwise bump mtime again.
	if !modTime.IsZero() {
		if err := os.Chtimes(writePath, time.Time{}, modTime); err != nil {
			return fmt.Errorf("set modification time: %w", err)
		}
	}

	if writePath != dst {
		if err := os.Rename(writePath, dst); err != nil {
			return fmt.Errorf("rename temp file to destination: %w", err)
		}
	}

	return nil
}

// openDstFile opens the file data is written to. For atomic copies that is a
// temp file beside dst carrying the target mode; otherwise dst itself.
func openDstFile(dst string, mode os.FileMode, atomic bool) (*os.File, string, error) {
	if atomic {
		tmpFile, err := os.CreateTemp(filepath.Dir(dst), tempPattern)
		if err != nil {
			return nil, "", fmt.Errorf("create temp file: %w", err)
		}
		writePath := tmpFile.Name()
		if err := tmpFile.Chmod(mode); err != nil {
			_ = tmpFile.Close()
			_ = os.Remove(writePath) //nolint:gosec // G304: writePath is from os.CreateTemp, not user input.
			return nil, "", fmt.Errorf("chmod temp file: %w", err)
		}
		return tmpFile, writePath, nil
	}

	f, err := os.OpenFile( //nolint:gosec // G304: paths are from controlled sources
		dst,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		mode,
	)
	if err != nil {
		return nil, "", fmt.Errorf("create destination: %w", err)
	}
	return f, dst, nil
}
