package cli

import (
	"io"

	"github.com/spf13/cobra"
)

var completionGenerators = map[string]func(*cobra.Command, io.Writer) error{
	"bash":       (*cobra.Command).GenBashCompletion,
	"zsh":        (*cobra.Command).GenZshCompletion,
	"fish":       func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
	"powershell": (*cobra.Command).GenPowerShellCompletionWithDesc,
}

// completionCommand prints a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell.

  $ source <(blockgrid completion bash)
  $ blockgrid completion zsh > "${fpath[1]}/_blockgrid"
  $ blockgrid completion fish > ~/.config/fish/completions/blockgrid.fish
  PS> blockgrid completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards for the change to take effect.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
