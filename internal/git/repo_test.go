package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// setupSourceRepo creates a repo with a main branch and one commit to clone from.
func setupSourceRepo(t *testing.T, dir string) string {
	t.Helper()
	ctx := context.Background()
	repoPath := filepath.Join(dir, "source")

	if err := runGit(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	return repoPath
}

// setupHub clones a source repo into dir/hub/.bare the way wt clone lays it out.
func setupHub(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	dir := resolveTempDir(t)
	source := setupSourceRepo(t, dir)

	hubRoot := filepath.Join(dir, "hub")
	if err := os.MkdirAll(hubRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	var c Client
	if err := c.CloneBare(ctx, source, filepath.Join(hubRoot, ".bare")); err != nil {
		t.Fatalf("CloneBare = %v", err)
	}
	if err := os.WriteFile(filepath.Join(hubRoot, ".git"), []byte("gitdir: ./.bare\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return hubRoot
}

func TestClient_HubLifecycle(t *testing.T) {
	ctx := context.Background()
	hubRoot := setupHub(t)
	var c Client

	if err := c.ConfigureFetch(ctx, hubRoot); err != nil {
		t.Fatalf("ConfigureFetch = %v", err)
	}

	branch, err := c.DefaultBranch(ctx, hubRoot)
	if err != nil {
		t.Fatalf("DefaultBranch = %v", err)
	}
	if branch != "main" {
		t.Fatalf("DefaultBranch = %q, want main", branch)
	}

	mainPath := filepath.Join(hubRoot, "main")
	if err := c.AddWorktree(ctx, hubRoot, AddOptions{Path: mainPath, Commitish: "main"}); err != nil {
		t.Fatalf("AddWorktree(main) = %v", err)
	}
	featurePath := filepath.Join(hubRoot, "feature-x")
	if err := c.AddWorktree(ctx, hubRoot, AddOptions{Path: featurePath, NewBranch: "feature-x", Commitish: "main"}); err != nil {
		t.Fatalf("AddWorktree(feature-x) = %v", err)
	}

	worktrees, err := c.ListWorktrees(ctx, hubRoot)
	if err != nil {
		t.Fatalf("ListWorktrees = %v", err)
	}
	branches := map[string]string{}
	for _, wt := range worktrees {
		if !wt.Bare {
			branches[filepath.Base(wt.Path)] = wt.Branch
		}
	}
	if branches["main"] != "main" || branches["feature-x"] != "feature-x" {
		t.Fatalf("ListWorktrees branches = %v", branches)
	}

	if err := c.RemoveWorktree(ctx, hubRoot, featurePath, false); err != nil {
		t.Fatalf("RemoveWorktree = %v", err)
	}
	if _, err := os.Stat(featurePath); !os.IsNotExist(err) {
		t.Errorf("worktree dir still exists after remove: %v", err)
	}
}

func TestClient_OperationError(t *testing.T) {
	ctx := context.Background()
	hubRoot := setupHub(t)
	var c Client

	// An unknown start point makes git exit non-zero.
	err := c.AddWorktree(ctx, hubRoot, AddOptions{Path: filepath.Join(hubRoot, "x"), Commitish: "does-not-exist"})
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("AddWorktree error = %v, want *OperationError", err)
	}
	if opErr.Operation != "worktree add" {
		t.Errorf("Operation = %q, want %q", opErr.Operation, "worktree add")
	}
	if opErr.ExitStatus == 0 {
		t.Error("ExitStatus = 0, want non-zero")
	}
}

func TestClient_CloneBareFailure(t *testing.T) {
	ctx := context.Background()
	dir := resolveTempDir(t)
	var c Client

	err := c.CloneBare(ctx, filepath.Join(dir, "missing"), filepath.Join(dir, "hub", ".bare"))
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("CloneBare error = %v, want *OperationError", err)
	}
	if opErr.Operation != "clone" {
		t.Errorf("Operation = %q, want clone", opErr.Operation)
	}
}
