package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := run(dir, nil, "init", "--quiet"); err != nil {
		return err
	}
	return nil
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
// The author doubles as committer so commits work without a global git identity.
func CommitAll(dir, message, authorName, authorEmail string) (string, error) {
	env := []string{
		"GIT_AUTHOR_NAME=" + authorName,
		"GIT_AUTHOR_EMAIL=" + authorEmail,
		"GIT_COMMITTER_NAME=" + authorName,
		"GIT_COMMITTER_EMAIL=" + authorEmail,
	}

	// Stage all files.
	if _, err := run(dir, nil, "add", "-A"); err != nil {
		return "", err
	}

	// Commit.
	if _, err := run(dir, env, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}

	// Get short hash.
	out, err := run(dir, nil, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return out, nil
}

// HasChanges reports whether the work tree has anything to commit.
func HasChanges(dir string) (bool, error) {
	out, err := run(dir, nil, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func run(dir string, env []string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}
