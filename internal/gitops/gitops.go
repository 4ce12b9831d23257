// Package gitops shells out to git for the small amount of repository
// metadata the init workflow needs. A missing git binary or a
// directory outside any repository degrades to empty values rather
// than errors, so callers can fall back to filesystem-derived
// defaults.
package gitops

import (
	"os/exec"
	"strings"
)

// RepoRoot returns the absolute path of the repository containing dir,
// or "" when dir is not inside a git work tree.
func RepoRoot(dir string) string {
	return gitOutput(dir, "rev-parse", "--show-toplevel")
}

// RemoteURL returns the URL of the origin remote, or "".
func RemoteURL(dir string) string {
	return gitOutput(dir, "remote", "get-url", "origin")
}

// CurrentBranch returns the checked-out branch name, or "" (including
// for a detached HEAD).
func CurrentBranch(dir string) string {
	branch := gitOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if branch == "HEAD" {
		return ""
	}
	return branch
}

// ProjectNameFromRemote extracts a project name from a git remote URL.
// Handles ssh (git@host:org/name.git) and https forms; returns "" when
// the URL has no recognizable path component.
func ProjectNameFromRemote(remote string) string {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return ""
	}

	// Strip scheme or scp-style user@host: prefix.
	if i := strings.Index(remote, "://"); i >= 0 {
		remote = remote[i+3:]
		if j := strings.IndexByte(remote, '/'); j >= 0 {
			remote = remote[j+1:]
		} else {
			return ""
		}
	} else if i := strings.IndexByte(remote, ':'); i >= 0 {
		remote = remote[i+1:]
	}

	remote = strings.TrimSuffix(strings.TrimSuffix(remote, "/"), ".git")
	if i := strings.LastIndexByte(remote, '/'); i >= 0 {
		remote = remote[i+1:]
	}
	return remote
}

// gitOutput runs git -C dir with the given args and returns trimmed
// stdout, or "" on any failure.
func gitOutput(dir string, args ...string) string {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
