package hooks

import "os"

// Environment variables exposed to hook commands.
const (
	EnvCommand      = "WT_COMMAND"
	EnvWorktreeName = "WT_WORKTREE_NAME"
	EnvWorktreePath = "WT_WORKTREE_PATH"
	EnvHubRoot      = "WT_HUB_ROOT"
	EnvBranch       = "WT_BRANCH"
)

// Context describes the operation a hook runs for.
type Context struct {
	Command      Event
	WorktreeName string
	WorktreePath string
	HubRoot      string
	// Branch is only set for create.
	Branch string
}

// Env returns the context as KEY=value pairs. WT_BRANCH is always present,
// empty outside create, so a value inherited from the caller never leaks in.
func (c Context) Env() []string {
	return []string{
		EnvCommand + "=" + string(c.Command),
		EnvWorktreeName + "=" + c.WorktreeName,
		EnvWorktreePath + "=" + c.WorktreePath,
		EnvHubRoot + "=" + c.HubRoot,
		EnvBranch + "=" + c.Branch,
	}
}

// Dir returns the working directory for phase: the hub root for Pre, the
// worktree for Post. Post falls back to the hub root once the worktree is gone.
func (c Context) Dir(phase Phase) string {
	if phase == Pre {
		return c.HubRoot
	}
	if fi, err := os.Stat(c.WorktreePath); err == nil && fi.IsDir() {
		return c.WorktreePath
	}
	return c.HubRoot
}
