package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/config"
	"github.com/wtree-dev/wt/internal/hub"
	"github.com/wtree-dev/wt/internal/log"
	"github.com/wtree-dev/wt/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Inspect and create hook configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Inspect and create hook configuration.

Hooks are read from the first file that exists:
  1. <hub>/.wtree/hooks.toml          (hub-local)
  2. ~/.config/wt/hooks.toml          (global default, honours XDG_CONFIG_HOME)
The local file replaces the global one entirely; nothing is merged.`,
		Example: `  wt config path           # Which file is in effect
  wt config show           # Print the effective hooks as TOML
  wt config init           # Write a template to .wtree/hooks.toml
  wt config init --global  # Write a template to ~/.config/wt/hooks.toml`,
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

// resolveConfig resolves the hook configuration for the invoking directory.
// Outside a hub only the global file is considered.
func resolveConfig(ctx context.Context) (config.Resolved, error) {
	e := envFromContext(ctx)
	hubRoot, err := hub.Find(e.workDir)
	if err != nil {
		log.FromContext(ctx).Debug("not in a hub, using global hook config", "dir", e.workDir)
		return config.Resolve("", e.globalPath)
	}
	return config.Load(ctx, hubRoot, e.globalPath)
}

func newConfigPathCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the hook file in effect",
		Args:  cobra.NoArgs,
		Example: `  wt config path           # Effective file for this hub
  wt config path --global  # Location of the global default`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if global {
				path := envFromContext(ctx).globalPath
				if path == "" {
					return fmt.Errorf("cannot determine global hook config location")
				}
				out.Println(path)
				return nil
			}

			res, err := resolveConfig(ctx)
			if err != nil {
				return err
			}
			if res.Source == config.SourceBuiltin {
				l.Printf("No hook file found; using the empty built-in configuration\n")
				return nil
			}
			out.Println(res.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Print the global default location")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective hooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			res, err := resolveConfig(ctx)
			if err != nil {
				return err
			}

			if res.Path != "" {
				out.Printf("# source: %s (%s)\n", res.Source, res.Path)
			} else {
				out.Printf("# source: %s\n", res.Source)
			}
			for _, key := range res.Undecoded {
				out.Printf("# ignored unknown key: %s\n", key)
			}
			return config.Encode(out.Writer(), res.Config)
		},
	}

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the hook file template",
		Args:  cobra.NoArgs,
		Long: `Write the commented hook file template.

Without flags the template goes to .wtree/hooks.toml of the current hub.
With --global it becomes the default copied into newly cloned hubs.`,
		Example: `  wt config init             # Hub-local hooks
  wt config init --global    # Global default
  wt config init -f          # Overwrite an existing file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			e := envFromContext(ctx)

			path := e.globalPath
			if global {
				if path == "" {
					return fmt.Errorf("cannot determine global hook config location")
				}
			} else {
				hubRoot, err := hub.Find(e.workDir)
				if err != nil {
					return err
				}
				path = config.LocalPath(hubRoot)
			}

			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			l.Printf("Created hook config: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&global, "global", false, "Write the global default instead")

	return cmd
}
