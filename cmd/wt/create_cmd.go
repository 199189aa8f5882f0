package main

import (
	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/lifecycle"
	"github.com/wtree-dev/wt/internal/log"
)

func newCreateCmd() *cobra.Command {
	var opts lifecycle.CreateOptions

	cmd := &cobra.Command{
		Use:     "create <name>",
		Short:   "Create a worktree in the hub",
		Aliases: []string{"c"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Create a worktree as a direct child of the hub root.

Without --branch, git creates a branch named after the worktree from HEAD.
With --branch, that branch is checked out; when it is already checked out
in another worktree, a new branch named after the worktree starts from it.
With --from, a new branch starts at the HEAD of an existing worktree.

Hooks: [create] pre runs in the hub root before git, post runs in the new
worktree. WT_BRANCH holds the branch name.`,
		Example: `  wt create feature-x                 # New branch feature-x from HEAD
  wt create review -b feature-y       # Check out feature-y
  wt create spike --from feature-x    # New branch spike at feature-x's HEAD
  wt c feature-x -s                   # Create and cd into it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			res, err := newManager(ctx).Create(ctx, args[0], opts)
			if err != nil {
				return err
			}

			l.Printf("Created worktree %s%s at %s\n", res.Name, branchLabel(res.Branch), res.Path)
			return emitTarget(ctx, res.Target)
		},
	}

	cmd.Flags().StringVarP(&opts.Branch, "branch", "b", "", "Branch to check out")
	cmd.Flags().StringVar(&opts.From, "from", "", "Start a new branch at this worktree's HEAD")
	cmd.Flags().BoolVarP(&opts.Switch, "switch", "s", false, "Change into the new worktree")
	cmd.MarkFlagsMutuallyExclusive("branch", "from")

	cmd.RegisterFlagCompletionFunc("from", completeWorktrees)

	return cmd
}
