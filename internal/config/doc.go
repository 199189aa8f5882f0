// Package config loads the hook configuration of a hub.
//
// The configuration is resolved fresh on every invocation, first match wins:
//
//   - .wtree/hooks.toml in the hub root
//   - $XDG_CONFIG_HOME/wt/hooks.toml (default ~/.config/wt/hooks.toml)
//   - the builtin empty configuration
//
// # File Format
//
//	[create]
//	pre = ["[[ \"$WT_WORKTREE_NAME\" =~ ^feature- ]]"]
//	post = ["npm install"]
//
//	[switch]
//	post = []
//
//	[remove]
//	pre = []
//
// Sections and keys may be omitted and default to empty lists. Commands are
// opaque strings passed to the shell. A file that does not parse fails with
// ErrInvalidHookConfig before any hook or git operation runs.
//
// During clone the local file is materialized from the global default, or
// from the commented template when no global default exists.
package config
