// Package cmd provides helpers for executing external commands with proper error handling.
//
// Commands run with stderr captured so that failures carry the tool's own
// message. A failed command yields an [*ExitError] holding the exit status,
// which callers use to build domain errors (see git.OperationError).
//
// # Usage
//
//	if err := cmd.RunContext(ctx, hubRoot, "git", "worktree", "prune"); err != nil {
//	    return fmt.Errorf("prune: %w", err)
//	}
//
//	out, err := cmd.OutputContext(ctx, hubRoot, "git", "worktree", "list", "--porcelain")
//
// In verbose mode every invocation is echoed through the context logger
// together with its duration.
package cmd
