// Package hooks runs the user's lifecycle hook commands.
//
// Each of the create, switch and remove operations has a pre and a post
// list (see package config). Commands are opaque strings handed to the
// shell, so pipes, conditionals and variable expansion work as typed:
//
//	[create]
//	pre = ["[[ \"$WT_WORKTREE_NAME\" =~ ^feature- ]]"]
//	post = ["npm install", "cp ../main/.env ."]
//
// # Execution
//
// Commands run one at a time in list order with the caller's stdin, stdout
// and stderr. The interpreter is bash when available, else sh; set
// WT_HOOK_SHELL to choose another.
//
// Working directory:
//   - pre: the hub root
//   - post: the worktree, or the hub root when it no longer exists (remove)
//
// # Failure Policy
//
// A failing pre hook stops the list and the operation, which is never
// attempted; the error is a [PreHookFailedError]. A failing post hook is
// printed as a warning and the next command runs; the operation still
// succeeds.
//
// # Environment
//
// The process environment is inherited, with these added on top:
//
//   - WT_COMMAND: create, switch or remove
//   - WT_WORKTREE_NAME: target worktree name
//   - WT_WORKTREE_PATH: absolute path of the target worktree
//   - WT_HUB_ROOT: absolute path of the hub
//   - WT_BRANCH: branch passed to create, empty otherwise
package hooks
