package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/wtree-dev/wt/internal/cmd"
)

// OperationError reports a git operation that exited unsuccessfully.
type OperationError struct {
	Operation  string
	ExitStatus int
	Err        error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("git %s failed (exit status %d): %v", e.Operation, e.ExitStatus, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// operation names a git invocation by its first two words ("worktree add").
func operation(args []string) string {
	if len(args) >= 2 && !strings.HasPrefix(args[1], "-") {
		return args[0] + " " + args[1]
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func wrap(ctx context.Context, args []string, err error) error {
	if err == nil || ctx.Err() != nil {
		return err
	}
	return &OperationError{Operation: operation(args), ExitStatus: cmd.ExitCode(err), Err: err}
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return wrap(ctx, args, cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...))
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	out, err := cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
	return out, wrap(ctx, args, err)
}
