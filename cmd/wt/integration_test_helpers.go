//go:build integration

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// runGit runs git in dir and fails the test on error.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

// setupSourceRepo creates a non-bare repo with an initial commit on main
// in dir/name, to be cloned into a hub.
func setupSourceRepo(t *testing.T, dir, name string) string {
	t.Helper()

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0o755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	runGit(t, repoPath, "init", "-b", "main")
	runGit(t, repoPath, "config", "user.email", "test@test.com")
	runGit(t, repoPath, "config", "user.name", "Test User")
	runGit(t, repoPath, "config", "commit.gpgsign", "false")

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# "+name+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGit(t, repoPath, "add", "README.md")
	runGit(t, repoPath, "commit", "-m", "Initial commit")

	return repoPath
}

// setupHub clones a fresh source repo into a hub and returns the hub root.
// The global hook file location is returned as well; it does not exist.
func setupHub(t *testing.T) (hubRoot, globalPath string) {
	t.Helper()

	tmpDir := resolvePath(t, t.TempDir())
	source := setupSourceRepo(t, filepath.Join(tmpDir, "upstream"), "project")
	globalPath = filepath.Join(tmpDir, "xdg", "wt", "hooks.toml")

	work := filepath.Join(tmpDir, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}
	ctx, _ := testContext(t, work, globalPath)
	if err := run(ctx, newCloneCmd(), "file://"+source+"/"); err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	// Commits in the hub need an identity
	hubRoot = filepath.Join(work, "project")
	runGit(t, hubRoot, "config", "user.email", "test@test.com")
	runGit(t, hubRoot, "config", "user.name", "Test User")
	return hubRoot, globalPath
}

// writeHooks replaces the hub-local hook file.
func writeHooks(t *testing.T, hubRoot, content string) {
	t.Helper()
	path := filepath.Join(hubRoot, ".wtree", "hooks.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write hooks: %v", err)
	}
}

// requireBash skips tests whose hooks rely on bash syntax.
func requireBash(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
}
