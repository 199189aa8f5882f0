package main

import (
	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/lifecycle"
	"github.com/wtree-dev/wt/internal/log"
)

func newCloneCmd() *cobra.Command {
	var switchTo bool

	cmd := &cobra.Command{
		Use:     "clone <url>",
		Short:   "Clone a repository into a new hub",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Clone a repository into a new hub in the current directory.

The hub is named after the repository. It holds a bare clone in .bare, a
.git file pointing at it, the hook file .wtree/hooks.toml and a worktree
for the default branch.

The hook file is copied from ~/.config/wt/hooks.toml when it exists,
otherwise a commented template is written. The default branch worktree is
created with the create hooks.`,
		Example: `  wt clone https://github.com/org/repo.git     # Creates ./repo
  wt clone git@github.com:org/repo.git -s      # Clone and cd into the default worktree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			res, err := newManager(ctx).Clone(ctx, args[0], lifecycle.CloneOptions{Switch: switchTo})
			if err != nil {
				return err
			}

			l.Printf("Cloned into %s\n", res.HubRoot)
			l.Printf("Hook config: %s\n", res.ConfigPath)
			if res.Worktree != nil {
				l.Printf("Created worktree %s%s at %s\n", res.Worktree.Name, branchLabel(res.Worktree.Branch), res.Worktree.Path)
			}

			return emitTarget(ctx, res.Target)
		},
	}

	cmd.Flags().BoolVarP(&switchTo, "switch", "s", false, "Change into the default branch worktree")

	return cmd
}
