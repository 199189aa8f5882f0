// Package lifecycle implements the worktree operations of wt.
//
// Each operation follows the same choreography: resolve the hub, validate the
// target against the registry, load the hook configuration, run the pre
// hooks, apply the git mutation, then run the post hooks.
//
//	Idle -> pre -> (aborted | mutated) -> post -> done
//
// A failing pre hook aborts before git is touched. Post hooks only ever add
// warnings to the result.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wtree-dev/wt/internal/config"
	"github.com/wtree-dev/wt/internal/git"
	"github.com/wtree-dev/wt/internal/history"
	"github.com/wtree-dev/wt/internal/hooks"
	"github.com/wtree-dev/wt/internal/hub"
	"github.com/wtree-dev/wt/internal/log"
	"github.com/wtree-dev/wt/internal/registry"
)

var (
	// ErrInvalidName is returned for worktree names that are not a single path element.
	ErrInvalidName = errors.New("invalid worktree name")
	// ErrNoPrevious is returned by "switch -" when no previous worktree is recorded.
	ErrNoPrevious = errors.New("no previous worktree; use 'wt switch <name>' first")
)

// Git is the subset of the git client the lifecycle operations use.
type Git interface {
	registry.Lister
	AddWorktree(ctx context.Context, dir string, opts git.AddOptions) error
	RemoveWorktree(ctx context.Context, dir, path string, force bool) error
	CloneBare(ctx context.Context, url, dest string) error
	ConfigureFetch(ctx context.Context, dir string) error
	DefaultBranch(ctx context.Context, dir string) (string, error)
}

// HookRunner executes the configured hooks of one phase.
type HookRunner interface {
	Run(ctx context.Context, phase hooks.Phase, cfg config.HookConfig, hctx hooks.Context) (hooks.Outcome, error)
}

// Manager runs lifecycle operations relative to a working directory.
type Manager struct {
	git        Git
	hooks      HookRunner
	workDir    string
	globalPath string
}

// New creates a Manager. workDir is where the hub is searched from and
// where clone creates new hubs. globalPath is the per-user default hook
// file and may be empty.
func New(g Git, runner HookRunner, workDir, globalPath string) *Manager {
	return &Manager{git: g, hooks: runner, workDir: workDir, globalPath: globalPath}
}

// Result describes the worktree an operation acted on.
type Result struct {
	Name   string
	Path   string
	Branch string
	// Target is the directory the invoking shell should change into.
	// Empty when no directory change is requested.
	Target string
	// Warnings are the post hooks that failed.
	Warnings []hooks.PostHookWarning
}

func (m *Manager) registry() *registry.Registry {
	return registry.New(m.git, m.workDir)
}

func (m *Manager) hubRoot() (string, error) {
	return hub.Find(m.workDir)
}

func (m *Manager) loadConfig(ctx context.Context, hubRoot string) (config.HookConfig, error) {
	res, err := config.Load(ctx, hubRoot, m.globalPath)
	if err != nil {
		return config.HookConfig{}, err
	}
	return res.Config, nil
}

// withHooks runs the pre hooks, mutate, then the post hooks. mutate is never
// called when a pre hook fails.
func (m *Manager) withHooks(ctx context.Context, cfg config.HookConfig, hctx hooks.Context, mutate func() error) ([]hooks.PostHookWarning, error) {
	if _, err := m.hooks.Run(ctx, hooks.Pre, cfg, hctx); err != nil {
		return nil, err
	}
	if err := mutate(); err != nil {
		return nil, err
	}
	out, err := m.hooks.Run(ctx, hooks.Post, cfg, hctx)
	if err != nil {
		return out.Warnings, err
	}
	return out.Warnings, nil
}

// recordPrevious remembers the worktree the user is leaving. Failures only warn.
func (m *Manager) recordPrevious(ctx context.Context, hubRoot, leaving, target string) {
	if leaving == "" || leaving == target {
		return
	}
	if err := history.SavePrevious(ctx, hubRoot, leaving); err != nil {
		log.FromContext(ctx).Warnf("could not record previous worktree: %v", err)
	}
}

// ValidateName checks that name can be used as a worktree directory.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, filepath.Separator), strings.ContainsRune(name, '/'):
		return fmt.Errorf("%w: %q must not contain a path separator", ErrInvalidName, name)
	case name == hub.MarkerDir, name == config.DirName, name == ".git":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("%w: %q must not start with '-'", ErrInvalidName, name)
	}
	return nil
}
