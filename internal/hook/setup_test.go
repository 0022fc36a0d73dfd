package hook

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func settingsPath(home string) string {
	return filepath.Join(home, ".claude", "settings.json")
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func hasEvent(settings map[string]any, event string) bool {
	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		return false
	}
	return eventHasHook(hooks, event)
}

func commandEntry(cmd string) map[string]any {
	return map[string]any{
		"matcher": "",
		"hooks":   []any{map[string]any{"type": "command", "command": cmd}},
	}
}

func TestInstall_NoFile(t *testing.T) {
	home := setupHome(t)
	var out bytes.Buffer

	if err := Install(&out); err != nil {
		t.Fatal(err)
	}

	path := settingsPath(home)
	if !hasEvent(readJSON(t, path), "SessionEnd") {
		t.Error("missing SessionEnd hook")
	}
	if !strings.Contains(out.String(), "wrapup hook installed in ~/.claude/settings.json") {
		t.Errorf("unexpected status: %q", out.String())
	}
	if _, err := os.Stat(path + ".wrapup.bak"); !os.IsNotExist(err) {
		t.Error("backup should not exist for fresh install")
	}
}

func TestInstall_EmptyFile(t *testing.T) {
	home := setupHome(t)
	path := settingsPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Install(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if !hasEvent(readJSON(t, path), "SessionEnd") {
		t.Error("missing SessionEnd hook")
	}
}

func TestInstall_PreservesExistingSettings(t *testing.T) {
	home := setupHome(t)
	path := settingsPath(home)
	writeJSON(t, path, map[string]any{
		"permissions": map[string]any{"allow": true},
		"hooks": map[string]any{
			"SessionEnd": []any{commandEntry("other-tool")},
		},
	})

	if err := Install(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	settings := readJSON(t, path)
	if _, ok := settings["permissions"]; !ok {
		t.Error("existing 'permissions' key was lost")
	}
	sessionEnd := settings["hooks"].(map[string]any)["SessionEnd"].([]any)
	if len(sessionEnd) != 2 {
		t.Errorf("expected 2 SessionEnd entries, got %d", len(sessionEnd))
	}
}

func TestInstall_Idempotent(t *testing.T) {
	home := setupHome(t)
	path := settingsPath(home)

	if err := Install(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Install(&out); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Error("idempotent install modified the file")
	}
	if !strings.Contains(out.String(), "already configured") {
		t.Errorf("unexpected status: %q", out.String())
	}
}

func TestInstall_CreatesBackup(t *testing.T) {
	home := setupHome(t)
	path := settingsPath(home)
	writeJSON(t, path, map[string]any{"existing": "data"})

	orig, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Install(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	backupContent, err := os.ReadFile(path + ".wrapup.bak")
	if err != nil {
		t.Fatal("backup file should exist")
	}
	if string(orig) != string(backupContent) {
		t.Error("backup content should match original file")
	}
}

func TestInstall_MalformedJSON(t *testing.T) {
	home := setupHome(t)
	path := settingsPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{invalid json}"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Install(&bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("error should mention parsing, got: %v", err)
	}
	if content, _ := os.ReadFile(path); string(content) != "{invalid json}" {
		t.Error("malformed JSON file should not be modified")
	}
	if _, err := os.Stat(path + ".wrapup.bak"); !os.IsNotExist(err) {
		t.Error("no backup should be created for malformed JSON")
	}
}

func TestUninstall_PreservesOtherHooks(t *testing.T) {
	home := setupHome(t)
	path := settingsPath(home)
	writeJSON(t, path, map[string]any{
		"hooks": map[string]any{
			"SessionEnd": []any{commandEntry("other-tool"), commandEntry("wrapup hook")},
		},
	})

	if err := Uninstall(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	hooks := readJSON(t, path)["hooks"].(map[string]any)
	sessionEnd, ok := hooks["SessionEnd"].([]any)
	if !ok || len(sessionEnd) != 1 {
		t.Errorf("expected 1 SessionEnd entry (other-tool), got %v", hooks["SessionEnd"])
	}
}

func TestUninstall_CleansEmptyHooksMap(t *testing.T) {
	home := setupHome(t)

	if err := Install(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if err := Uninstall(&bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	if _, ok := readJSON(t, settingsPath(home))["hooks"]; ok {
		t.Error("empty hooks map should be removed entirely")
	}
}

func TestUninstall_NotInstalled(t *testing.T) {
	setupHome(t)
	var out bytes.Buffer
	if err := Uninstall(&out); err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if !strings.Contains(out.String(), "not found") {
		t.Errorf("unexpected status: %q", out.String())
	}
}
