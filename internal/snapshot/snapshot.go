// Package snapshot captures best-effort views of repository state for the
// session summary. Every provider may fail silently.
package snapshot

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/suykerbuyk/wrapup/internal/config"
)

// DefaultTimeout bounds each external command.
const DefaultTimeout = 5 * time.Second

// Section titles used in the snapshot file.
const (
	TitleFilesChanged = "Files Changed"
	TitleStructure    = "Project Structure"
)

// Snapshot is one titled block of captured output.
type Snapshot struct {
	Title string
	Body  string
}

// Provider yields a snapshot, or false when nothing could be captured.
type Provider interface {
	Capture(ctx context.Context) (Snapshot, bool)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context) (Snapshot, bool)

// Capture calls f.
func (f ProviderFunc) Capture(ctx context.Context) (Snapshot, bool) { return f(ctx) }

// Command runs an external program and uses its stdout as the body.
type Command struct {
	Title   string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// Capture runs the command. A missing binary, non-zero exit, timeout, or
// empty output all yield false.
func (c Command) Capture(ctx context.Context) (Snapshot, bool) {
	if len(c.Args) == 0 {
		return Snapshot{}, false
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	out, err := cmd.Output()
	if err != nil {
		return Snapshot{}, false
	}
	body := strings.TrimRight(string(out), "\n")
	if strings.TrimSpace(body) == "" {
		return Snapshot{}, false
	}
	return Snapshot{Title: c.Title, Body: body}, true
}

// FromConfig builds the configured providers, run in dir. Returns nil when
// snapshots are disabled.
func FromConfig(cfg config.SnapshotConfig, dir string) []Provider {
	if !cfg.Enabled {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	var providers []Provider
	if len(cfg.Diff) > 0 {
		providers = append(providers, Command{Title: TitleFilesChanged, Args: cfg.Diff, Dir: dir, Timeout: timeout})
	}
	if len(cfg.Tree) > 0 {
		providers = append(providers, Command{Title: TitleStructure, Args: cfg.Tree, Dir: dir, Timeout: timeout})
	}
	return providers
}

// CaptureAll runs providers in order and keeps the ones that succeeded.
func CaptureAll(ctx context.Context, providers []Provider) []Snapshot {
	var snaps []Snapshot
	for _, p := range providers {
		if s, ok := p.Capture(ctx); ok {
			snaps = append(snaps, s)
		}
	}
	return snaps
}
