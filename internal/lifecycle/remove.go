package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/wtree-dev/wt/internal/hooks"
)

// RemoveOptions configures Remove.
type RemoveOptions struct {
	// Force removes worktrees with local modifications.
	Force bool
}

// TargetError is the failure of one remove target.
type TargetError struct {
	Name string
	Err  error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// RemoveError aggregates the failed targets of a batch remove.
type RemoveError struct {
	Failures []*TargetError
	Total    int
}

func (e *RemoveError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to remove %d of %d worktrees:", len(e.Failures), e.Total)
	for _, f := range e.Failures {
		b.WriteString("\n  ")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap exposes each failure to errors.Is and errors.As.
func (e *RemoveError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// RemoveResult lists the worktrees that were removed.
type RemoveResult struct {
	Removed []Result
	// Target is the hub root when the working directory was inside a removed
	// worktree, empty otherwise.
	Target string
}

// Remove deletes each named worktree in turn. Every target is fully
// processed (pre hooks, git worktree remove, post hooks) before the next;
// a failing target does not stop the rest. When any target failed the
// returned error is a *RemoveError, alongside the result of the successes.
func (m *Manager) Remove(ctx context.Context, names []string, opts RemoveOptions) (*RemoveResult, error) {
	hubRoot, err := m.hubRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := m.loadConfig(ctx, hubRoot)
	if err != nil {
		return nil, err
	}

	reg := m.registry()
	res := &RemoveResult{}
	var failures []*TargetError

	for _, name := range names {
		if ctxErr := ctx.Err(); ctxErr != nil {
			failures = append(failures, &TargetError{Name: name, Err: ctxErr})
			continue
		}

		wt, err := reg.Resolve(ctx, hubRoot, name)
		if err != nil {
			failures = append(failures, &TargetError{Name: name, Err: err})
			continue
		}

		hctx := hooks.Context{
			Command:      hooks.Remove,
			WorktreeName: wt.Name,
			WorktreePath: wt.Path,
			HubRoot:      hubRoot,
		}
		warnings, err := m.withHooks(ctx, cfg, hctx, func() error {
			return m.git.RemoveWorktree(ctx, hubRoot, wt.Path, opts.Force)
		})
		if err != nil {
			failures = append(failures, &TargetError{Name: name, Err: err})
			continue
		}

		res.Removed = append(res.Removed, Result{Name: wt.Name, Path: wt.Path, Branch: wt.Branch, Warnings: warnings})
		if wt.Current {
			res.Target = hubRoot
		}
	}

	if len(failures) > 0 {
		return res, &RemoveError{Failures: failures, Total: len(names)}
	}
	return res, nil
}
