// Package locate resolves a reference file against an ordered list of
// candidate directories.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/giantswarm/refsync/internal/sentinel"
)

// ErrResourceUnavailable is returned when no candidate directory holds the
// requested file.
const ErrResourceUnavailable = sentinel.Error("resource unavailable")

// Find returns the path of fileName in the first candidate directory that
// contains it as a regular file. Empty candidates are skipped. Find never
// modifies the filesystem.
//
// A stat error other than not-exist (e.g. permission denied on a candidate)
// is returned immediately rather than skipped, so a misconfigured search path
// is not mistaken for a missing file.
func Find(fileName string, candidates []string) (string, error) {
	if fileName == "" {
		return "", errors.New("file name must not be empty")
	}

	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, fileName)
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			continue
		case err != nil:
			return "", fmt.Errorf("stat candidate %s: %w", path, err)
		case !info.Mode().IsRegular():
			continue
		}
		return path, nil
	}

	return "", fmt.Errorf("%w: %s not found in [%s]",
		ErrResourceUnavailable, fileName, strings.Join(candidates, string(os.PathListSeparator)))
}

// FromEnv splits the path list held by the environment variable name.
// An unset or empty variable yields nil.
func FromEnv(name string) []string {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil
	}
	var dirs []string
	for _, d := range filepath.SplitList(v) {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
