package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the wrapup config directory path.
// Uses $XDG_CONFIG_HOME/wrapup if set, otherwise ~/.config/wrapup.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wrapup")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wrapup")
}

const defaultTOML = `# wrapup configuration

[context]
# Environment variable checked first for the transcript text.
env = "CURSOR_CONTEXT"
# Read when nothing is piped on stdin. .zst and .jsonl are understood.
history_file = ".conversation_history"

[analysis]
window = 5
context_lines = 3
action_markers = ["edit_file", "run_terminal_cmd"]

[output]
log_path = ".wrapup/bugfixes.md"
snapshot_path = ".wrapup/last_session_summary.md"

[snapshot]
enabled = true
timeout_seconds = 5
diff = ["git", "diff", "--name-status"]
tree = ["tree", "-L", "2", "-I", "node_modules|.git|.build|vendor"]

[archive]
enabled = false
dir = ".wrapup/archive"
`

// WriteDefault writes a default config.toml. Returns the config file path
// and whether a new file was written. An existing file is left alone.
func WriteDefault() (string, bool, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultTOML), 0o644); err != nil {
		return "", false, fmt.Errorf("write config: %w", err)
	}

	return path, true, nil
}

// CompressHome replaces $HOME prefix with ~/ for display.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
