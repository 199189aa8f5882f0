package main

import (
	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/lifecycle"
	"github.com/wtree-dev/wt/internal/log"
)

func newRemoveCmd() *cobra.Command {
	var opts lifecycle.RemoveOptions

	cmd := &cobra.Command{
		Use:               "remove <name>...",
		Short:             "Remove worktrees from the hub",
		Aliases:           []string{"rm"},
		GroupID:           GroupCore,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeWorktrees,
		Long: `Remove one or more worktrees.

Each worktree is fully processed (pre hooks, git worktree remove, post
hooks) before the next one. A failure does not stop the remaining
worktrees; the command exits non-zero if any of them failed.

Hooks: [remove] pre runs in the hub root, post runs in the hub root since
the worktree is gone. Removing the worktree you are in changes into the
hub root.`,
		Example: `  wt remove feature-x        # Remove one worktree
  wt rm a b c                # Remove several
  wt rm feature-x -f         # Remove even with local changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			res, err := newManager(ctx).Remove(ctx, args, opts)
			if res != nil {
				for _, r := range res.Removed {
					l.Printf("Removed worktree %s\n", r.Name)
				}
				if tErr := emitTarget(ctx, res.Target); tErr != nil && err == nil {
					err = tErr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Remove worktrees with local modifications")

	return cmd
}
