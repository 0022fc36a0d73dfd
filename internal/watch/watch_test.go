package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string, run func(context.Context) error, stderr *bytes.Buffer) (context.CancelFunc, <-chan error) {
	t.Helper()
	w, err := New(path, 20*time.Millisecond, run, stderr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return cancel, done
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a run")
	}
}

func TestWatcher_RunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".conversation_history")

	ran := make(chan struct{}, 10)
	cancel, done := startWatcher(t, path, func(context.Context) error {
		ran <- struct{}{}
		return nil
	}, &bytes.Buffer{})
	defer cancel()

	if err := os.WriteFile(path, []byte("error one.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, ran)

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	var runs atomic.Int32
	ran := make(chan struct{}, 10)
	w, err := New(path, 300*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		ran <- struct{}{}
		return nil
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			t.Fatal(err)
		}
		f.WriteString("line\n")
		f.Close()
	}
	waitFor(t, ran)

	time.Sleep(500 * time.Millisecond)
	if n := runs.Load(); n != 1 {
		t.Errorf("expected 1 run for a burst of writes, got %d", n)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	var runs atomic.Int32
	cancel, _ := startWatcher(t, path, func(context.Context) error {
		runs.Add(1)
		return nil
	}, &bytes.Buffer{})
	defer cancel()

	if err := os.WriteFile(filepath.Join(dir, "bugfixes.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if n := runs.Load(); n != 0 {
		t.Errorf("unrelated file triggered %d runs", n)
	}
}

func TestWatcher_ReportsRunErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	var stderr bytes.Buffer
	ran := make(chan struct{}, 10)
	cancel, done := startWatcher(t, path, func(context.Context) error {
		defer func() { ran <- struct{}{} }()
		return errors.New("write log: disk full")
	}, &stderr)

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, ran)
	cancel()
	<-done

	if !bytes.Contains(stderr.Bytes(), []byte("wrapup: write log: disk full")) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "history")
	if _, err := New(path, 0, func(context.Context) error { return nil }, &bytes.Buffer{}); err == nil {
		t.Error("expected error for a missing parent directory")
	}
}
