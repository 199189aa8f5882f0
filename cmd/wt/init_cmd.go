package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtree-dev/wt/internal/output"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Output shell wrapper function",
		GroupID:   GroupConfig,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Long: `Output a shell wrapper function that lets wt change the directory of
your shell.

A program cannot change its parent shell's directory. The wrapper points
WT_CD_FILE at a temporary file, runs wt, and changes into the directory wt
wrote there. Hook output goes straight to the terminal and never mixes with
the path. A failing command can still leave a target: when "wt remove"
deletes the current worktree but another name fails, the shell moves to the
hub root and the exit status stays non-zero.`,
		Example: `  eval "$(wt init bash)"           # add to ~/.bashrc
  eval "$(wt init zsh)"            # add to ~/.zshrc
  wt init fish | source            # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			switch args[0] {
			case "fish":
				out.Printf("%s", fishInit)
			case "bash":
				out.Printf("%s", bashInit)
			case "zsh":
				out.Printf("%s", zshInit)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: fish, bash, zsh)", args[0])
			}
			return nil
		},
	}

	return cmd
}

const bashInit = `# wt shell wrapper
# Install: eval "$(wt init bash)"

wt() {
    local cd_file rc
    cd_file="$(mktemp "${TMPDIR:-/tmp}/wt-cd.XXXXXX")" || return
    WT_CD_FILE="$cd_file" command wt "$@"
    rc=$?
    if [[ -s "$cd_file" ]]; then
        cd "$(cat "$cd_file")" || rc=$?
    fi
    rm -f "$cd_file"
    return $rc
}
`

const zshInit = `# wt shell wrapper
# Install: eval "$(wt init zsh)"

wt() {
    local cd_file rc
    cd_file="$(mktemp "${TMPDIR:-/tmp}/wt-cd.XXXXXX")" || return
    WT_CD_FILE="$cd_file" command wt "$@"
    rc=$?
    if [[ -s "$cd_file" ]]; then
        cd "$(<"$cd_file")" || rc=$?
    fi
    rm -f "$cd_file"
    return $rc
}
`

const fishInit = `# wt shell wrapper
# Install: wt init fish | source
# Or add to config.fish: wt init fish | source

function wt --wraps=wt --description 'Git worktree hub manager'
    set -l cd_file (mktemp)
    or return 1
    WT_CD_FILE=$cd_file command wt $argv
    set -l rc $status
    if test -s $cd_file
        cd (cat $cd_file)
        or set rc $status
    end
    rm -f $cd_file
    return $rc
end
`
