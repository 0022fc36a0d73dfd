//go:build unix

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_StdinPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := w.WriteString("piped transcript\nthat worked"); err != nil {
		t.Fatal(err)
	}
	w.Close()

	history := writeHistory(t, ".conversation_history", "from history")
	ctx := Resolver{Getenv: noEnv, Stdin: r, HistoryPath: history}.Resolve()
	if ctx.Origin != OriginStdin {
		t.Fatalf("Origin = %q, want stdin", ctx.Origin)
	}
	if ctx.Text.String() != "piped transcript\nthat worked" {
		t.Errorf("Text = %q", ctx.Text.String())
	}
}

func TestResolve_StdinNotReadyDoesNotBlock(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	history := writeHistory(t, ".conversation_history", "from history")
	ctx := Resolver{Getenv: noEnv, Stdin: r, HistoryPath: history}.Resolve()
	if ctx.Origin != OriginHistory {
		t.Errorf("Origin = %q, want history", ctx.Origin)
	}
}

func TestResolve_StdinEmptyFallsThrough(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	w.Close()

	ctx := Resolver{Getenv: noEnv, Stdin: r, HistoryPath: filepath.Join(t.TempDir(), "none")}.Resolve()
	if ctx.Origin != OriginNone {
		t.Errorf("Origin = %q, want none", ctx.Origin)
	}
}

func TestResolve_StdinRegularFile(t *testing.T) {
	path := writeHistory(t, "input.txt", "redirected file")
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	ctx := Resolver{Getenv: noEnv, Stdin: f}.Resolve()
	if ctx.Origin != OriginStdin || ctx.Text.String() != "redirected file" {
		t.Errorf("got %q from %q", ctx.Text.String(), ctx.Origin)
	}
}
