package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/suykerbuyk/wrapup/internal/archive"
	"github.com/suykerbuyk/wrapup/internal/config"
	"github.com/suykerbuyk/wrapup/internal/render"
)

// Status represents the outcome of a single check.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "pass"
	case Warn:
		return "warn"
	case Fail:
		return "FAIL"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string
}

// Report aggregates all check results.
type Report struct {
	Results []Result
}

// HasFailures returns true if any result has Fail status.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if res.Status == Fail {
			return true
		}
	}
	return false
}

// Format returns the human-readable report string.
func (r Report) Format() string {
	if len(r.Results) == 0 {
		return "wrapup check\n\n  no checks ran\n"
	}

	maxName := 0
	for _, res := range r.Results {
		if len(res.Name) > maxName {
			maxName = len(res.Name)
		}
	}

	var b strings.Builder
	b.WriteString("wrapup check\n\n")

	var passed, warnings, failures int
	for _, res := range r.Results {
		switch res.Status {
		case Pass:
			passed++
		case Warn:
			warnings++
		case Fail:
			failures++
		}
		fmt.Fprintf(&b, "  %-4s  %-*s  %s\n", res.Status, maxName, res.Name, res.Detail)
	}

	fmt.Fprintf(&b, "\n%d passed, %d warning, %d failure\n", passed, warnings, failures)
	return b.String()
}

// CheckConfig reports the resolved config path. Broken TOML is caught
// when the config loads, before any check runs.
func CheckConfig() Result {
	cfgPath := filepath.Join(config.ConfigDir(), "config.toml")
	if _, err := os.Stat(cfgPath); err != nil {
		return Result{Name: "config", Status: Pass, Detail: "defaults (" + config.CompressHome(cfgPath) + " not found)"}
	}
	return Result{Name: "config", Status: Pass, Detail: config.CompressHome(cfgPath)}
}

// CheckHistory reports whether the fallback history file is available.
func CheckHistory(path, envKey string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: "history", Status: Warn, Detail: fmt.Sprintf("%s not found (pipe a transcript or set $%s)", path, envKey)}
	}
	if info.IsDir() {
		return Result{Name: "history", Status: Fail, Detail: path + " is a directory"}
	}
	return Result{Name: "history", Status: Pass, Detail: fmt.Sprintf("%s (%s, modified %s)",
		config.CompressHome(path), humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))}
}

// CheckLog reports the append-only log and how many sessions it holds.
func CheckLog(path string) Result {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Name: "log", Status: Warn, Detail: path + " not written yet"}
	}
	if err != nil {
		return Result{Name: "log", Status: Fail, Detail: fmt.Sprintf("%s unreadable: %v", path, err)}
	}
	sessions := strings.Count(string(data), "\n## Session ")
	return Result{Name: "log", Status: Pass, Detail: fmt.Sprintf("%s (%d sessions, %s)",
		config.CompressHome(path), sessions, humanize.Bytes(uint64(len(data))))}
}

// CheckSnapshot parses the snapshot frontmatter and summarizes the last run.
func CheckSnapshot(path string) Result {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Name: "snapshot", Status: Warn, Detail: path + " not written yet"}
	}
	if err != nil {
		return Result{Name: "snapshot", Status: Fail, Detail: fmt.Sprintf("%s unreadable: %v", path, err)}
	}
	fm, err := render.ParseFrontmatter(data)
	if err != nil {
		return Result{Name: "snapshot", Status: Fail, Detail: fmt.Sprintf("%s: %v", path, err)}
	}
	return Result{Name: "snapshot", Status: Pass, Detail: fmt.Sprintf("last run %s, %d errors (%d unresolved), friction %d",
		fm.Date, fm.Errors, fm.Unresolved, fm.FrictionScore)}
}

// CheckTools reports whether the snapshot commands can be found. Missing
// tools only drop their snapshot section.
func CheckTools(cfg config.SnapshotConfig) []Result {
	if !cfg.Enabled {
		return []Result{{Name: "snapshot tools", Status: Pass, Detail: "disabled"}}
	}
	var results []Result
	for _, args := range [][]string{cfg.Diff, cfg.Tree} {
		if len(args) == 0 {
			continue
		}
		name := "tool:" + args[0]
		if path, err := exec.LookPath(args[0]); err == nil {
			results = append(results, Result{Name: name, Status: Pass, Detail: path})
		} else {
			results = append(results, Result{Name: name, Status: Warn, Detail: args[0] + " not on PATH (section omitted)"})
		}
	}
	return results
}

// CheckArchive reports the transcript archive size when archiving is on.
func CheckArchive(cfg config.ArchiveConfig) Result {
	if !cfg.Enabled {
		return Result{Name: "archive", Status: Pass, Detail: "disabled"}
	}
	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		return Result{Name: "archive", Status: Warn, Detail: cfg.Dir + " not found (created on first run)"}
	}
	var count int
	var total int64
	for _, e := range entries {
		if e.IsDir() || !archive.IsCompressed(e.Name()) {
			continue
		}
		if info, err := e.Info(); err == nil {
			total += info.Size()
		}
		count++
	}
	return Result{Name: "archive", Status: Pass, Detail: fmt.Sprintf("%s (%d transcripts, %s)",
		config.CompressHome(cfg.Dir), count, humanize.Bytes(uint64(total)))}
}

// CheckHook checks whether "wrapup hook" is configured in ~/.claude/settings.json.
func CheckHook() Result {
	home, err := os.UserHomeDir()
	if err != nil {
		return Result{Name: "hook", Status: Warn, Detail: "cannot determine home directory"}
	}
	return checkHookFile(filepath.Join(home, ".claude", "settings.json"))
}

// The hook is optional, so its absence only warns.
func checkHookFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Name: "hook", Status: Warn, Detail: config.CompressHome(path) + " not found"}
	}
	if strings.Contains(string(data), "wrapup hook") {
		return Result{Name: "hook", Status: Pass, Detail: "wrapup hook found in " + config.CompressHome(path)}
	}
	return Result{Name: "hook", Status: Warn, Detail: "wrapup hook not installed (run: wrapup hook install)"}
}

// Run executes all checks against the given config and returns a report.
// Relative paths resolve against dir.
func Run(cfg config.Config, dir string) Report {
	at := func(p string) string {
		if dir == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	var results []Result
	results = append(results, CheckConfig())
	results = append(results, CheckHistory(at(cfg.Context.HistoryFile), cfg.Context.Env))
	results = append(results, CheckLog(at(cfg.Output.LogPath)))
	results = append(results, CheckSnapshot(at(cfg.Output.SnapshotPath)))
	results = append(results, CheckTools(cfg.Snapshot)...)
	archiveCfg := cfg.Archive
	archiveCfg.Dir = at(archiveCfg.Dir)
	results = append(results, CheckArchive(archiveCfg))
	results = append(results, CheckHook())

	return Report{Results: results}
}
