// Package source finds the session transcript: an environment variable,
// piped standard input, or a history file, in that order.
package source

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/suykerbuyk/wrapup/internal/archive"
	"github.com/suykerbuyk/wrapup/internal/transcript"
)

// Sentinel is the transcript used when no source yields content.
const Sentinel = "No conversation context found"

// Origin names the source a transcript came from.
type Origin string

const (
	OriginEnv     Origin = "env"
	OriginStdin   Origin = "stdin"
	OriginHistory Origin = "history"
	OriginNone    Origin = "none"

	// OriginTranscript marks a transcript handed over by an agent hook.
	OriginTranscript Origin = "transcript"
)

// Context is the resolved transcript and where it came from.
type Context struct {
	Text   transcript.Text
	Origin Origin
}

// Resolver tries each source in priority order. A nil Getenv uses
// os.Getenv; a nil Stdin skips the stdin source.
type Resolver struct {
	EnvKey      string
	Getenv      func(string) string
	Stdin       *os.File
	HistoryPath string
}

// Resolve returns the first source with content, or the sentinel. It
// never blocks and never fails.
func (r Resolver) Resolve() Context {
	if s, ok := r.fromEnv(); ok {
		return Context{Text: transcript.New(s), Origin: OriginEnv}
	}
	if s, ok := r.fromStdin(); ok {
		return Context{Text: transcript.New(s), Origin: OriginStdin}
	}
	if t, ok := r.fromHistory(); ok {
		return Context{Text: t, Origin: OriginHistory}
	}
	return Context{Text: transcript.New(Sentinel), Origin: OriginNone}
}

func (r Resolver) fromEnv() (string, bool) {
	if r.EnvKey == "" {
		return "", false
	}
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	v := getenv(r.EnvKey)
	return v, v != ""
}

func (r Resolver) fromStdin() (string, bool) {
	f := r.Stdin
	if f == nil {
		return "", false
	}
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "", false
	}
	if !ready(f) {
		return "", false
	}
	data, err := io.ReadAll(f)
	if err != nil {
		log.Printf("warning: read stdin: %v", err)
		return "", false
	}
	// An empty read means nothing was piped in.
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (r Resolver) fromHistory() (transcript.Text, bool) {
	if r.HistoryPath == "" {
		return transcript.Text{}, false
	}
	data, err := archive.ReadFile(r.HistoryPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning: read history %s: %v", r.HistoryPath, err)
		}
		return transcript.Text{}, false
	}

	if IsJSONL(r.HistoryPath) {
		t, err := transcript.Flatten(bytes.NewReader(data))
		if err != nil {
			log.Printf("warning: flatten history %s: %v", r.HistoryPath, err)
			return transcript.Text{}, false
		}
		return t, true
	}
	return transcript.New(string(data)), true
}

// IsJSONL reports whether path names a JSONL transcript, compressed or not.
func IsJSONL(path string) bool {
	return strings.HasSuffix(strings.TrimSuffix(path, archive.Ext), ".jsonl")
}
