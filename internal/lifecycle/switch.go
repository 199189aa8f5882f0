package lifecycle

import (
	"context"

	"github.com/wtree-dev/wt/internal/history"
	"github.com/wtree-dev/wt/internal/hooks"
	"github.com/wtree-dev/wt/internal/log"
	"github.com/wtree-dev/wt/internal/preserve"
	"github.com/wtree-dev/wt/internal/registry"
)

// PreviousWorktree is the switch argument naming the previous worktree.
const PreviousWorktree = "-"

// SwitchOptions configures Switch.
type SwitchOptions struct {
	// Envs copies .env* files from the current worktree into the target.
	Envs bool
}

// SwitchResult is the Result of Switch plus the propagated env files.
type SwitchResult struct {
	Result
	EnvFiles []string
}

// Switch makes name the target directory of the invoking shell. There is
// no git mutation; the worktree the user leaves is recorded for "switch -".
func (m *Manager) Switch(ctx context.Context, name string, opts SwitchOptions) (*SwitchResult, error) {
	l := log.FromContext(ctx)

	hubRoot, err := m.hubRoot()
	if err != nil {
		return nil, err
	}

	if name == PreviousWorktree {
		prev, err := history.ReadPrevious(hubRoot)
		if err != nil {
			return nil, err
		}
		if prev == "" {
			return nil, ErrNoPrevious
		}
		name = prev
	}

	reg := m.registry()
	target, err := reg.Resolve(ctx, hubRoot, name)
	if err != nil {
		return nil, err
	}
	current, err := reg.Current(ctx, hubRoot)
	if err != nil {
		return nil, err
	}

	cfg, err := m.loadConfig(ctx, hubRoot)
	if err != nil {
		return nil, err
	}

	hctx := hooks.Context{
		Command:      hooks.Switch,
		WorktreeName: target.Name,
		WorktreePath: target.Path,
		HubRoot:      hubRoot,
	}
	res := &SwitchResult{Result: Result{Name: target.Name, Path: target.Path, Branch: target.Branch}}

	warnings, err := m.withHooks(ctx, cfg, hctx, func() error {
		if opts.Envs {
			res.EnvFiles = m.copyEnvs(ctx, current, target.Path)
		}
		if current != nil {
			m.recordPrevious(ctx, hubRoot, current.Name, target.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(res.EnvFiles) > 0 {
		l.Debug("copied env files", "count", len(res.EnvFiles), "to", target.Path)
	}

	res.Warnings = warnings
	res.Target = target.Path
	return res, nil
}

func (m *Manager) copyEnvs(ctx context.Context, current *registry.Worktree, targetPath string) []string {
	l := log.FromContext(ctx)
	if current == nil {
		l.Warnf("not inside a worktree; no .env files copied")
		return nil
	}
	copied, err := preserve.CopyEnvFiles(ctx, current.Path, targetPath)
	if err != nil {
		l.Warnf("%v", err)
	}
	return copied
}
