package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/log"
	"github.com/wtree-dev/wt/internal/output"
	"github.com/wtree-dev/wt/internal/registry"
	"github.com/wtree-dev/wt/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees of the hub",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the worktrees of the hub containing the current directory.

The worktree you are in is marked with *. Detached worktrees show their
abbreviated commit instead of a branch.`,
		Example: `  wt list          # Table of worktrees
  wt ls --json     # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			res, err := newManager(ctx).List(ctx)
			if err != nil {
				return err
			}
			l.Debug("listed worktrees", "hub", res.HubRoot, "count", len(res.Worktrees))

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				worktrees := res.Worktrees
				if worktrees == nil {
					worktrees = []registry.Worktree{}
				}
				return enc.Encode(worktrees)
			}

			if len(res.Worktrees) == 0 {
				l.Printf("No worktrees in %s; create one with 'wt create <name>'\n", res.HubRoot)
				return nil
			}

			table := static.RenderTable(static.WorktreeHeaders, static.WorktreeRows(res.Worktrees))
			return static.Write(out.Writer(), os.Environ(), table)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
