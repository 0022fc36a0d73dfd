package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all wrapup configuration.
type Config struct {
	Context  ContextConfig  `toml:"context"`
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Archive  ArchiveConfig  `toml:"archive"`
}

// ContextConfig locates the transcript when nothing is piped in.
type ContextConfig struct {
	Env         string `toml:"env"`
	HistoryFile string `toml:"history_file"`
}

type AnalysisConfig struct {
	Window        int      `toml:"window"`
	ContextLines  int      `toml:"context_lines"`
	ActionMarkers []string `toml:"action_markers"`
}

// OutputConfig names the two report artifacts. Relative paths resolve
// against the working directory.
type OutputConfig struct {
	LogPath      string `toml:"log_path"`
	SnapshotPath string `toml:"snapshot_path"`
}

type SnapshotConfig struct {
	Enabled        bool     `toml:"enabled"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	Diff           []string `toml:"diff"`
	Tree           []string `toml:"tree"`
}

type ArchiveConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Context: ContextConfig{
			Env:         "CURSOR_CONTEXT",
			HistoryFile: ".conversation_history",
		},
		Analysis: AnalysisConfig{
			Window:        5,
			ContextLines:  3,
			ActionMarkers: []string{"edit_file", "run_terminal_cmd"},
		},
		Output: OutputConfig{
			LogPath:      filepath.Join(".wrapup", "bugfixes.md"),
			SnapshotPath: filepath.Join(".wrapup", "last_session_summary.md"),
		},
		Snapshot: SnapshotConfig{
			Enabled:        true,
			TimeoutSeconds: 5,
			Diff:           []string{"git", "diff", "--name-status"},
			Tree:           []string{"tree", "-L", "2", "-I", "node_modules|.git|.build|vendor"},
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Dir:     filepath.Join(".wrapup", "archive"),
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	// Expand ~ in paths
	cfg.Context.HistoryFile = expandHome(cfg.Context.HistoryFile)
	cfg.Output.LogPath = expandHome(cfg.Output.LogPath)
	cfg.Output.SnapshotPath = expandHome(cfg.Output.SnapshotPath)
	cfg.Archive.Dir = expandHome(cfg.Archive.Dir)

	return cfg, nil
}

func (c Config) validate() error {
	if c.Analysis.Window < 1 {
		return fmt.Errorf("analysis.window must be at least 1, got %d", c.Analysis.Window)
	}
	if c.Analysis.ContextLines < 0 {
		return fmt.Errorf("analysis.context_lines must not be negative, got %d", c.Analysis.ContextLines)
	}
	if c.Output.LogPath == "" || c.Output.SnapshotPath == "" {
		return fmt.Errorf("output.log_path and output.snapshot_path must be set")
	}
	if c.Output.LogPath == c.Output.SnapshotPath {
		return fmt.Errorf("output.log_path and output.snapshot_path must differ")
	}
	return nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "wrapup", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "wrapup", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
