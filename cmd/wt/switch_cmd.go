package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/lifecycle"
	"github.com/wtree-dev/wt/internal/log"
)

func newSwitchCmd() *cobra.Command {
	var (
		opts            lifecycle.SwitchOptions
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:               "switch <name|->",
		Short:             "Change into a worktree",
		Aliases:           []string{"sw"},
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFirstWorktree,
		Long: `Change into a worktree of the hub.

The shell wrapper from 'wt init' performs the directory change. Without it
the path is printed. Use "-" to return to the previous worktree.

Hooks: [switch] pre runs in the hub root, post runs in the target worktree.
A failing pre hook cancels the switch.`,
		Example: `  wt switch feature-x        # cd into feature-x
  wt sw -                    # Back to the previous worktree
  wt switch feature-x -e     # Also copy .env files from the current worktree
  wt switch feature-x --copy # Copy the path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			res, err := newManager(ctx).Switch(ctx, args[0], opts)
			if err != nil {
				return err
			}

			for _, f := range res.EnvFiles {
				l.Printf("Copied %s\n", f)
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(res.Path); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				l.Printf("Copied %s to clipboard\n", res.Path)
			}

			return emitTarget(ctx, res.Target)
		},
	}

	cmd.Flags().BoolVarP(&opts.Envs, "envs", "e", false, "Copy .env files from the current worktree")
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the worktree path to the clipboard")

	return cmd
}
