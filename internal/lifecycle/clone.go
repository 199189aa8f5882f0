package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wtree-dev/wt/internal/config"
	"github.com/wtree-dev/wt/internal/git"
	"github.com/wtree-dev/wt/internal/hooks"
	"github.com/wtree-dev/wt/internal/hub"
	"github.com/wtree-dev/wt/internal/log"
)

var (
	// ErrInvalidURL is returned when no repository name can be derived from a clone URL.
	ErrInvalidURL = errors.New("cannot extract repository name from URL")
	// ErrHubExists is returned when the clone destination already exists.
	ErrHubExists = errors.New("destination already exists")
)

// gitFileContent points git at the bare store from the hub root.
const gitFileContent = "gitdir: ./" + hub.MarkerDir + "\n"

// RepoName derives the hub directory name from a clone URL.
//
//	https://github.com/user/my-repo.git -> my-repo
//	git@github.com:user/my-repo.git     -> my-repo
//	git@host:my-repo                    -> my-repo
func RepoName(url string) (string, error) {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndexAny(trimmed, "/:"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	name := strings.TrimSuffix(trimmed, ".git")
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	return name, nil
}

// CloneOptions configures Clone.
type CloneOptions struct {
	Switch bool
}

// CloneResult describes a freshly cloned hub.
type CloneResult struct {
	HubRoot    string
	ConfigPath string
	// Worktree is the default branch worktree; nil when it could not be created.
	Worktree *Result
	Target   string
}

// Clone creates a new hub in the working directory: a bare clone of url in
// <name>/.bare, a .git file pointing at it, the hub-local hook file, and a
// worktree for the default branch wrapped in the create hooks.
//
// The hub is removed again when the clone itself fails. Failing to create
// the default worktree only warns, and the hub root becomes the target.
func (m *Manager) Clone(ctx context.Context, url string, opts CloneOptions) (*CloneResult, error) {
	l := log.FromContext(ctx)

	name, err := RepoName(url)
	if err != nil {
		return nil, err
	}
	hubRoot := filepath.Join(m.workDir, name)
	if _, err := os.Stat(hubRoot); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrHubExists, hubRoot)
	}

	if err := os.Mkdir(hubRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create hub directory: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(hubRoot); err == nil {
		hubRoot = resolved
	}
	if err := m.git.CloneBare(ctx, url, filepath.Join(hubRoot, hub.MarkerDir)); err != nil {
		_ = os.RemoveAll(hubRoot)
		return nil, fmt.Errorf("clone %s: %w", url, err)
	}
	if err := os.WriteFile(filepath.Join(hubRoot, ".git"), []byte(gitFileContent), 0o644); err != nil {
		return nil, fmt.Errorf("write .git file: %w", err)
	}
	if err := m.git.ConfigureFetch(ctx, hubRoot); err != nil {
		l.Warnf("failed to configure fetch refspec: %v", err)
	}

	res := &CloneResult{HubRoot: hubRoot}
	res.ConfigPath, err = config.Materialize(hubRoot, m.globalPath)
	if err != nil {
		return nil, err
	}
	cfg, err := m.loadConfig(ctx, hubRoot)
	if err != nil {
		return nil, err
	}

	branch, err := m.git.DefaultBranch(ctx, hubRoot)
	if err != nil || branch == "" {
		l.Warnf("could not detect default branch; create a worktree with 'wt create <name>'")
		if opts.Switch {
			res.Target = hubRoot
		}
		return res, nil
	}

	wt, err := m.createDefault(ctx, cfg, hubRoot, branch)
	if err != nil {
		var pre *hooks.PreHookFailedError
		if errors.As(err, &pre) || ctx.Err() != nil {
			return nil, err
		}
		l.Warnf("failed to create default branch worktree: %v", err)
		if opts.Switch {
			res.Target = hubRoot
		}
		return res, nil
	}

	res.Worktree = wt
	if opts.Switch {
		res.Target = wt.Path
		wt.Target = wt.Path
	}
	return res, nil
}

func (m *Manager) createDefault(ctx context.Context, cfg config.HookConfig, hubRoot, branch string) (*Result, error) {
	name := strings.ReplaceAll(branch, "/", "-")
	path := filepath.Join(hubRoot, name)
	hctx := hooks.Context{
		Command:      hooks.Create,
		WorktreeName: name,
		WorktreePath: path,
		HubRoot:      hubRoot,
		Branch:       branch,
	}

	warnings, err := m.withHooks(ctx, cfg, hctx, func() error {
		return m.git.AddWorktree(ctx, hubRoot, git.AddOptions{Path: path, Commitish: branch})
	})
	if err != nil {
		return nil, err
	}
	return &Result{Name: name, Path: path, Branch: branch, Warnings: warnings}, nil
}
