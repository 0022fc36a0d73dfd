package hook

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/suykerbuyk/wrapup/internal/config"
)

const hookCommand = "wrapup hook"

// hookEvents are the Claude Code events wrapup registers for. Only the
// end of a session carries a complete transcript.
var hookEvents = []string{"SessionEnd"}

// SettingsPath returns the path to ~/.claude/settings.json.
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// Install registers wrapup in ~/.claude/settings.json.
// Idempotent: returns nil when already installed.
func Install(w io.Writer) error {
	return editSettings(w, func(settings map[string]any) (bool, string) {
		if isInstalled(settings) {
			return false, "wrapup hook already configured in %s\n"
		}
		addHooks(settings)
		return true, "wrapup hook installed in %s\n"
	})
}

// Uninstall removes wrapup entries from ~/.claude/settings.json.
// Idempotent: returns nil when not installed.
func Uninstall(w io.Writer) error {
	return editSettings(w, func(settings map[string]any) (bool, string) {
		if !hasAnyHook(settings) {
			return false, "wrapup hook not found in %s\n"
		}
		removeHooks(settings)
		return true, "wrapup hook removed from %s\n"
	})
}

// editSettings loads the settings file, applies edit, and writes it back
// after a backup when edit reports a change. msg is a format taking the
// settings path.
func editSettings(w io.Writer, edit func(map[string]any) (changed bool, msg string)) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}

	settings, err := readSettings(path)
	if err != nil {
		return err
	}

	changed, msg := edit(settings)
	if changed {
		if err := backup(path); err != nil {
			return err
		}
		if err := writeSettings(path, settings); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, msg, config.CompressHome(path))
	return nil
}

// readSettings reads and parses the settings file.
// Returns an empty map if the file doesn't exist or is empty.
func readSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", config.CompressHome(path), err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return make(map[string]any), nil
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", config.CompressHome(path), err)
	}
	return settings, nil
}

// writeSettings writes the settings map as pretty-printed JSON.
func writeSettings(path string, settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", config.CompressHome(path), err)
	}
	return nil
}

// backup copies the settings file to path.wrapup.bak. No-op if the file
// doesn't exist yet.
func backup(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("backup: read %s: %w", config.CompressHome(path), err)
	}
	if err := os.WriteFile(path+".wrapup.bak", data, 0o644); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}

func hooksOf(settings map[string]any) (map[string]any, bool) {
	m, ok := settings["hooks"].(map[string]any)
	return m, ok
}

// isInstalled returns true when every registered event has a wrapup entry.
func isInstalled(settings map[string]any) bool {
	hooksMap, ok := hooksOf(settings)
	if !ok {
		return false
	}
	for _, event := range hookEvents {
		if !eventHasHook(hooksMap, event) {
			return false
		}
	}
	return true
}

func hasAnyHook(settings map[string]any) bool {
	hooksMap, ok := hooksOf(settings)
	if !ok {
		return false
	}
	for _, event := range hookEvents {
		if eventHasHook(hooksMap, event) {
			return true
		}
	}
	return false
}

func addHooks(settings map[string]any) {
	hooksMap, ok := hooksOf(settings)
	if !ok {
		hooksMap = make(map[string]any)
		settings["hooks"] = hooksMap
	}

	for _, event := range hookEvents {
		if eventHasHook(hooksMap, event) {
			continue
		}
		entry := map[string]any{
			"matcher": "",
			"hooks": []any{
				map[string]any{"type": "command", "command": hookCommand},
			},
		}
		entries, _ := hooksMap[event].([]any)
		hooksMap[event] = append(entries, entry)
	}
}

// removeHooks drops wrapup entries, then any event array or hooks map
// left empty.
func removeHooks(settings map[string]any) {
	hooksMap, ok := hooksOf(settings)
	if !ok {
		return
	}

	for _, event := range hookEvents {
		entries, ok := hooksMap[event].([]any)
		if !ok {
			continue
		}
		var kept []any
		for _, entry := range entries {
			if !isWrapupEntry(entry) {
				kept = append(kept, entry)
			}
		}
		if len(kept) == 0 {
			delete(hooksMap, event)
		} else {
			hooksMap[event] = kept
		}
	}

	if len(hooksMap) == 0 {
		delete(settings, "hooks")
	}
}

func eventHasHook(hooksMap map[string]any, event string) bool {
	entries, ok := hooksMap[event].([]any)
	if !ok {
		return false
	}
	for _, entry := range entries {
		if isWrapupEntry(entry) {
			return true
		}
	}
	return false
}

// isWrapupEntry walks one matcher entry looking for a command hook that
// runs wrapup.
func isWrapupEntry(entry any) bool {
	entryMap, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	inner, ok := entryMap["hooks"].([]any)
	if !ok {
		return false
	}
	for _, h := range inner {
		hMap, ok := h.(map[string]any)
		if !ok {
			continue
		}
		if cmd, _ := hMap["command"].(string); strings.Contains(cmd, hookCommand) {
			return true
		}
	}
	return false
}
