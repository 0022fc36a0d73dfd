package session

import (
	"context"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Info locates the project a session ran in.
type Info struct {
	Project string // e.g., "wrapup"
	Root    string // git top-level, or the cwd outside a repository
	Branch  string
}

// Detect determines project name, root, and branch from the working directory.
func Detect(cwd string) Info {
	if cwd == "" {
		return Info{Project: "_unknown"}
	}
	cwd = filepath.Clean(cwd)

	info := Info{Root: cwd}
	if root := gitOutput(cwd, "rev-parse", "--show-toplevel"); root != "" {
		info.Root = root
	}
	if branch := gitOutput(cwd, "rev-parse", "--abbrev-ref", "HEAD"); branch != "" && branch != "HEAD" {
		info.Branch = branch
	}
	info.Project = detectProject(cwd, info.Root)
	return info
}

// detectProject prefers the git remote origin name (stable across worktrees
// and renames), falling back to the root directory basename.
func detectProject(cwd, root string) string {
	if name := repoNameFromURL(gitOutput(cwd, "remote", "get-url", "origin")); name != "" {
		return name
	}
	name := filepath.Base(root)
	if name == "" || name == "." || name == "/" {
		return "_unknown"
	}
	return name
}

// gitOutput runs git in dir and returns its trimmed stdout.
// Returns "" on any failure (not a git repo, no remote, timeout).
func gitOutput(dir string, args ...string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// repoNameFromURL extracts the repository name from a git remote URL.
// Handles SSH (SCP-style), HTTPS, file://, and bare path formats.
// Returns "" on any parse failure.
func repoNameFromURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	var path string

	// SCP-style: git@host:path (no :// but has :)
	if !strings.Contains(rawURL, "://") && strings.Contains(rawURL, ":") {
		idx := strings.Index(rawURL, ":")
		path = rawURL[idx+1:]
	} else {
		u, err := url.Parse(rawURL)
		if err != nil {
			return ""
		}
		path = u.Path
	}

	if path == "" {
		return ""
	}

	name := strings.TrimSuffix(filepath.Base(path), ".git")
	if name == "" || name == "." || name == "/" {
		return ""
	}
	return name
}
