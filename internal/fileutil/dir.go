package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirMode is the permission mode used for every directory created by this
// package.
const DirMode os.FileMode = 0o755

// EnsureDir creates path and any missing parents with DirMode.
// An existing directory is not an error.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirMode); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// EnsureDirForFile creates the directory that will hold filePath.
func EnsureDirForFile(filePath string) error {
	if err := EnsureDir(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("ensure dir for %s: %w", filePath, err)
	}
	return nil
}
