package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/config"
	"github.com/wtree-dev/wt/internal/git"
	"github.com/wtree-dev/wt/internal/log"
	"github.com/wtree-dev/wt/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wt",
	Short: "Git worktree hub manager with lifecycle hooks",
	Long: `wt manages a hub: a directory holding a bare clone (.bare) and one
sibling directory per worktree.

Create, switch and remove run user-defined pre and post hooks from
.wtree/hooks.toml. A failing pre hook aborts the command before git is
touched; failing post hooks only print warnings.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The logger depends on -v/-q, which are only parsed by now
		cmd.SetContext(log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet)))

		// Skip git check for completion and help commands
		switch cmd.Name() {
		case "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd, "help", "init":
			return nil
		}
		if cmd.HasParent() && cmd.Parent().Name() == "config" {
			return nil
		}

		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wt: failed to get working directory: %v\n", err)
		os.Exit(1)
	}
	globalPath, err := config.GlobalPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = withEnv(ctx, env{workDir: workDir, globalPath: globalPath})

	// Primary data and cd targets go to stdout or the shell wrapper's file
	ctx = output.WithPrinter(ctx, output.New(os.Stdout, os.Getenv(output.CdFileEnv)))

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "wt: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show hooks and external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRemoveCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newInitCmd())
}
