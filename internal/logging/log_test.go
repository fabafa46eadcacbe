package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// Tests in this file mutate package state and must not run in parallel.

func TestLogger_DefaultIsCachedAndTagged(t *testing.T) {
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	SetLogger(nil)

	first := Logger()
	if first != Logger() {
		t.Error("Logger() should return the cached default on repeated calls")
	}

	first.Info("hello")
	if !strings.Contains(buf.String(), "component=refsync") {
		t.Errorf("log output %q lacks component attribute", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)
	if Logger() != custom {
		t.Fatal("Logger() did not return the installed logger")
	}

	SetLogger(nil)
	if got := Logger(); got == nil || got == custom {
		t.Errorf("Logger() after SetLogger(nil) = %p, want a fresh default", got)
	}
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%4 == 0 {
				SetLogger(custom)
				return
			}
			if Logger() == nil {
				t.Error("Logger() returned nil")
			}
		}()
	}
	wg.Wait()
}
