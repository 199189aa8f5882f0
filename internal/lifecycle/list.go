package lifecycle

import (
	"context"

	"github.com/wtree-dev/wt/internal/registry"
)

// ListResult is the worktree listing of a hub.
type ListResult struct {
	HubRoot   string
	Worktrees []registry.Worktree
}

// List returns the worktrees of the hub containing the working directory.
func (m *Manager) List(ctx context.Context) (*ListResult, error) {
	hubRoot, err := m.hubRoot()
	if err != nil {
		return nil, err
	}
	worktrees, err := m.registry().List(ctx, hubRoot)
	if err != nil {
		return nil, err
	}
	return &ListResult{HubRoot: hubRoot, Worktrees: worktrees}, nil
}

// Names returns the worktree names of the hub containing the working
// directory, for shell completion.
func (m *Manager) Names(ctx context.Context) ([]string, error) {
	hubRoot, err := m.hubRoot()
	if err != nil {
		return nil, err
	}
	return m.registry().Names(ctx, hubRoot)
}
