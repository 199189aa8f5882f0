package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/wtree-dev/wt/internal/git"
	"github.com/wtree-dev/wt/internal/hooks"
	"github.com/wtree-dev/wt/internal/registry"
)

// ErrConflictingBase is returned when both a branch and a source worktree are given.
var ErrConflictingBase = errors.New("--branch and --from are mutually exclusive")

// CreateOptions configures Create.
type CreateOptions struct {
	// Branch is checked out in the new worktree. When it is already checked
	// out elsewhere, a new branch named after the worktree starts from it.
	Branch string
	// From names an existing worktree whose HEAD the new branch starts at.
	From   string
	Switch bool
}

// Create adds the worktree name to the hub containing the working directory.
// Without a branch git creates a branch named after the worktree from HEAD.
func (m *Manager) Create(ctx context.Context, name string, opts CreateOptions) (*Result, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if opts.Branch != "" && opts.From != "" {
		return nil, ErrConflictingBase
	}

	hubRoot, err := m.hubRoot()
	if err != nil {
		return nil, err
	}
	reg := m.registry()
	if err := reg.EnsureAbsent(ctx, hubRoot, name); err != nil {
		return nil, err
	}

	path := registry.PathFor(hubRoot, name)
	add := git.AddOptions{Path: path}
	branch := opts.Branch

	switch {
	case opts.From != "":
		src, err := reg.Resolve(ctx, hubRoot, opts.From)
		if err != nil {
			return nil, fmt.Errorf("--from: %w", err)
		}
		add.NewBranch = name
		add.Commitish = src.Head
		branch = name
	case opts.Branch != "":
		holder, err := reg.BranchCheckedOut(ctx, hubRoot, opts.Branch)
		if err != nil {
			return nil, err
		}
		add.Commitish = opts.Branch
		if holder != nil {
			add.NewBranch = name
		}
	}

	cfg, err := m.loadConfig(ctx, hubRoot)
	if err != nil {
		return nil, err
	}

	hctx := hooks.Context{
		Command:      hooks.Create,
		WorktreeName: name,
		WorktreePath: path,
		HubRoot:      hubRoot,
		Branch:       branch,
	}
	warnings, err := m.withHooks(ctx, cfg, hctx, func() error {
		return m.git.AddWorktree(ctx, hubRoot, add)
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Name: name, Path: path, Branch: branch, Warnings: warnings}
	if add.NewBranch != "" {
		res.Branch = add.NewBranch
	}
	if opts.Switch {
		if cur, err := reg.Current(ctx, hubRoot); err == nil && cur != nil {
			m.recordPrevious(ctx, hubRoot, cur.Name, name)
		}
		res.Target = path
	}
	return res, nil
}
