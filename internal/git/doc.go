// Package git provides the git operations wt needs, via the git CLI.
//
// All operations call the git binary rather than a Go git library, so user
// configuration (SSH keys, credential helpers, aliases) applies unchanged.
//
// # Worktree Operations
//
//   - [Client.ListWorktrees]: parse "git worktree list --porcelain"
//   - [Client.AddWorktree]: create a worktree, optionally on a new branch
//   - [Client.RemoveWorktree]: remove a worktree
//
// # Hub Setup
//
//   - [Client.CloneBare]: clone into the hub's .bare store
//   - [Client.ConfigureFetch]: restore the fetch refspec bare clones omit
//   - [Client.DefaultBranch]: branch HEAD points to in the bare store
//
// Failures are returned as [*OperationError] carrying the git exit status.
package git
