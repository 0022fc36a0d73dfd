package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/suykerbuyk/wrapup/internal/archive"
	"github.com/suykerbuyk/wrapup/internal/config"
	"github.com/suykerbuyk/wrapup/internal/correlate"
	"github.com/suykerbuyk/wrapup/internal/extract"
	"github.com/suykerbuyk/wrapup/internal/friction"
	"github.com/suykerbuyk/wrapup/internal/render"
	"github.com/suykerbuyk/wrapup/internal/snapshot"
	"github.com/suykerbuyk/wrapup/internal/source"
	"github.com/suykerbuyk/wrapup/internal/transcript"
)

// Options controls where a summary run reads and writes.
type Options struct {
	Config config.Config

	// Dir anchors relative output paths and runs snapshot commands.
	// Empty means the process working directory.
	Dir string

	// Stdout receives the console summary. Nil discards it.
	Stdout io.Writer

	// Providers overrides the configured snapshot providers.
	Providers []snapshot.Provider

	// NoSnapshot skips every snapshot provider.
	NoSnapshot bool

	Now   func() time.Time
	RunID string
}

// Result holds the output of a summary run.
type Result struct {
	Report       render.Report
	LogPath      string
	SnapshotPath string
	ArchivePath  string // empty unless archiving is enabled and succeeded
}

// Analyze runs every scan over the transcript and assembles the report.
func Analyze(text transcript.Text, origin source.Origin, cfg config.AnalysisConfig) render.Report {
	c := correlate.Correlator{
		Window:        cfg.Window,
		ContextLines:  cfg.ContextLines,
		ActionMarkers: cfg.ActionMarkers,
	}

	matches := extract.Errors(text)
	occurrences := extract.Group(matches)
	findings := c.Correlate(text, occurrences)
	markers := friction.DetectFrustration(text)
	phrases := extract.Phrases(text)

	r := render.Report{
		Origin:      string(origin),
		Findings:    findings,
		Frustration: markers,
		Phrases:     phrases,
	}
	r.Friction = friction.Analyze(friction.Input{
		Lines:          text.NumLines(),
		ErrorMatches:   len(matches),
		DistinctErrors: len(occurrences),
		Unresolved:     correlate.Unresolved(findings),
		Markers:        len(markers),
		Solved:         len(r.Solved()),
		Attempts:       len(r.Attempts()),
	})
	return r
}

// Summarize analyzes one resolved transcript and writes the console
// summary, the appended log section, and the snapshot file.
func Summarize(ctx context.Context, src source.Context, opts Options) (*Result, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	report := Analyze(src.Text, src.Origin, opts.Config.Analysis)
	report.Date = now()
	report.RunID = runID

	if opts.Stdout != nil {
		if _, err := io.WriteString(opts.Stdout, render.Console(report)); err != nil {
			return nil, fmt.Errorf("write console: %w", err)
		}
	}

	logPath := opts.resolve(opts.Config.Output.LogPath)
	if err := AppendLog(logPath, render.LogSection(report)); err != nil {
		return nil, fmt.Errorf("write log: %w", err)
	}

	var snaps []snapshot.Snapshot
	if !opts.NoSnapshot {
		providers := opts.Providers
		if providers == nil {
			providers = snapshot.FromConfig(opts.Config.Snapshot, opts.Dir)
		}
		snaps = snapshot.CaptureAll(ctx, providers)
	}
	content, err := render.Snapshot(report, snaps)
	if err != nil {
		return nil, err
	}
	snapPath := opts.resolve(opts.Config.Output.SnapshotPath)
	if err := WriteSnapshot(snapPath, content); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	result := &Result{Report: report, LogPath: logPath, SnapshotPath: snapPath}

	// Archiving is best-effort; the summary is already on disk.
	if opts.Config.Archive.Enabled && src.Origin != source.OriginNone {
		name := archive.Name(report.Date.Format("2006-01-02"), runID)
		path, err := archive.Archive(src.Text.String(), name, opts.resolve(opts.Config.Archive.Dir))
		if err != nil {
			log.Printf("warning: archive transcript: %v", err)
		} else {
			result.ArchivePath = path
		}
	}

	return result, nil
}

// AppendLog appends section to the log at path, creating it and its
// parent directory as needed. Existing content is never rewritten.
func AppendLog(path, section string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(section); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteSnapshot replaces the snapshot file with content.
func WriteSnapshot(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func (o Options) resolve(path string) string {
	if o.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.Dir, path)
}
