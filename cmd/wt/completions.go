package main

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completeWorktrees provides worktree name completion for the hub containing
// the working directory. Names already given on the command line are skipped.
func completeWorktrees(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names, err := newManager(cmd.Context()).Names(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, name := range names {
		if strings.HasPrefix(name, toComplete) && !slices.Contains(args, name) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeFirstWorktree completes only the first positional argument.
func completeFirstWorktree(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeWorktrees(cmd, args, toComplete)
}
