package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Context.Env != "CURSOR_CONTEXT" {
		t.Errorf("Context.Env = %q", cfg.Context.Env)
	}
	if cfg.Context.HistoryFile != ".conversation_history" {
		t.Errorf("Context.HistoryFile = %q", cfg.Context.HistoryFile)
	}
	if cfg.Analysis.Window != 5 {
		t.Errorf("Analysis.Window = %d", cfg.Analysis.Window)
	}
	if cfg.Analysis.ContextLines != 3 {
		t.Errorf("Analysis.ContextLines = %d", cfg.Analysis.ContextLines)
	}
	if len(cfg.Analysis.ActionMarkers) != 2 || cfg.Analysis.ActionMarkers[0] != "edit_file" {
		t.Errorf("Analysis.ActionMarkers = %v", cfg.Analysis.ActionMarkers)
	}
	if cfg.Output.LogPath != filepath.Join(".wrapup", "bugfixes.md") {
		t.Errorf("Output.LogPath = %q", cfg.Output.LogPath)
	}
	if cfg.Output.SnapshotPath != filepath.Join(".wrapup", "last_session_summary.md") {
		t.Errorf("Output.SnapshotPath = %q", cfg.Output.SnapshotPath)
	}
	if !cfg.Snapshot.Enabled {
		t.Error("Snapshot.Enabled should default to true")
	}
	if cfg.Snapshot.Diff[0] != "git" || cfg.Snapshot.Tree[0] != "tree" {
		t.Errorf("snapshot commands = %v / %v", cfg.Snapshot.Diff, cfg.Snapshot.Tree)
	}
	if cfg.Archive.Enabled {
		t.Error("Archive.Enabled should default to false")
	}
}

func TestLoad_NoConfig(t *testing.T) {
	// Point XDG to an empty dir so no config file is found
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.Window != 5 {
		t.Errorf("Window = %d, want default 5", cfg.Analysis.Window)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	configDir := filepath.Join(xdg, "wrapup")
	os.MkdirAll(configDir, 0o755)

	tomlContent := `[context]
env = "SESSION_TEXT"
history_file = "/tmp/history.jsonl"

[analysis]
window = 8
action_markers = ["apply_patch"]

[output]
log_path = "/tmp/out/log.md"
snapshot_path = "/tmp/out/last.md"

[snapshot]
enabled = false

[archive]
enabled = true
`
	os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(tomlContent), 0o644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Context.Env != "SESSION_TEXT" {
		t.Errorf("Context.Env = %q", cfg.Context.Env)
	}
	if cfg.Context.HistoryFile != "/tmp/history.jsonl" {
		t.Errorf("Context.HistoryFile = %q", cfg.Context.HistoryFile)
	}
	if cfg.Analysis.Window != 8 {
		t.Errorf("Analysis.Window = %d", cfg.Analysis.Window)
	}
	if cfg.Analysis.ContextLines != 3 {
		t.Errorf("Analysis.ContextLines = %d, want default kept", cfg.Analysis.ContextLines)
	}
	if len(cfg.Analysis.ActionMarkers) != 1 || cfg.Analysis.ActionMarkers[0] != "apply_patch" {
		t.Errorf("Analysis.ActionMarkers = %v", cfg.Analysis.ActionMarkers)
	}
	if cfg.Output.LogPath != "/tmp/out/log.md" {
		t.Errorf("Output.LogPath = %q", cfg.Output.LogPath)
	}
	if cfg.Snapshot.Enabled {
		t.Error("Snapshot.Enabled should be false")
	}
	if !cfg.Archive.Enabled {
		t.Error("Archive.Enabled should be true")
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	configDir := filepath.Join(xdg, "wrapup")
	os.MkdirAll(configDir, 0o755)
	os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("[output]\nlog_path = \"~/notes/bugfixes.md\"\n"), 0o644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := filepath.Join(home, "notes", "bugfixes.md")
	if cfg.Output.LogPath != want {
		t.Errorf("LogPath = %q, want %q", cfg.Output.LogPath, want)
	}
}

func TestLoad_XDGPriority(t *testing.T) {
	xdg := t.TempDir()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)

	xdgDir := filepath.Join(xdg, "wrapup")
	os.MkdirAll(xdgDir, 0o755)
	os.WriteFile(filepath.Join(xdgDir, "config.toml"), []byte("[analysis]\nwindow = 7\n"), 0o644)

	homeDir := filepath.Join(home, ".config", "wrapup")
	os.MkdirAll(homeDir, 0o755)
	os.WriteFile(filepath.Join(homeDir, "config.toml"), []byte("[analysis]\nwindow = 9\n"), 0o644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Analysis.Window != 7 {
		t.Errorf("Window = %d, want 7 (XDG should take priority)", cfg.Analysis.Window)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	configDir := filepath.Join(xdg, "wrapup")
	os.MkdirAll(configDir, 0o755)
	os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`window = [broken`), 0o644)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"zero window", "[analysis]\nwindow = 0\n", "analysis.window"},
		{"negative context", "[analysis]\ncontext_lines = -1\n", "analysis.context_lines"},
		{"same outputs", "[output]\nlog_path = \"a.md\"\nsnapshot_path = \"a.md\"\n", "must differ"},
		{"empty log", "[output]\nlog_path = \"\"\n", "must be set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xdg := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", xdg)
			t.Setenv("HOME", t.TempDir())
			os.MkdirAll(filepath.Join(xdg, "wrapup"), 0o755)
			os.WriteFile(filepath.Join(xdg, "wrapup", "config.toml"), []byte(tt.content), 0o644)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
