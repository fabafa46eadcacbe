package provision

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// countingCopier delegates to FileCopier and counts invocations.
type countingCopier struct {
	calls atomic.Int64
	delay time.Duration
}

func (c *countingCopier) Copy(src, dst string) error {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return FileCopier.Copy(src, dst)
}

// fixture is a source directory holding proj.db and an empty scratch area.
type fixture struct {
	srcDir  string
	srcPath string
	destDir string
	copier  *countingCopier
}

func newFixture(t *testing.T, content []byte) *fixture {
	t.Helper()

	srcDir := t.TempDir()
	f := &fixture{
		srcDir:  srcDir,
		srcPath: filepath.Join(srcDir, "proj.db"),
		destDir: filepath.Join(t.TempDir(), "gcore", "tmp", "proj_db_tmpdir"),
		copier:  &countingCopier{},
	}
	f.writeSource(t, content, time.Time{})
	return f
}

// writeSource replaces the source content; a non-zero modTime is applied.
func (f *fixture) writeSource(t *testing.T, content []byte, modTime time.Time) {
	t.Helper()
	if err := os.WriteFile(f.srcPath, content, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if !modTime.IsZero() {
		setModTime(t, f.srcPath, modTime)
	}
}

func (f *fixture) config() Config {
	return Config{
		FileName:    "proj.db",
		SearchPaths: []string{f.srcDir},
		DestDir:     f.destDir,
		Copier:      f.copier,
		Logger:      discardLogger(),
	}
}

func (f *fixture) destPath() string {
	return filepath.Join(f.destDir, "proj.db")
}

func setModTime(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func assertSameContent(t *testing.T, a, b string) {
	t.Helper()
	ac, err := os.ReadFile(a) //nolint:gosec // G304: test-controlled
	if err != nil {
		t.Fatalf("read %s: %v", a, err)
	}
	bc, err := os.ReadFile(b) //nolint:gosec // G304: test-controlled
	if err != nil {
		t.Fatalf("read %s: %v", b, err)
	}
	if !bytes.Equal(ac, bc) {
		t.Errorf("%s and %s differ (%d vs %d bytes)", a, b, len(ac), len(bc))
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
