package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mandev/pkg/pipeline"
	"github.com/matzehuels/mandev/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mandev.

Bash:
  $ source <(mandev completion bash)

Zsh:
  $ mandev completion zsh > "${fpath[1]}/_mandev"

Fish:
  $ mandev completion fish > ~/.config/fish/completions/mandev.fish

PowerShell:
  PS> mandev completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions adds value completion for flags with a fixed set of
// choices and profile files for [file] arguments.
func registerCompletions(root *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}

	formats := make([]string, len(pipeline.RenderFormats))
	for i, f := range pipeline.RenderFormats {
		formats[i] = string(f)
	}
	profileExts := []string{"toml", "yaml", "yml", "json"}

	_ = root.RegisterFlagCompletionFunc("rasterizer", fixed(render.RasterizerNative, render.RasterizerRSVG))

	for _, cmd := range root.Commands() {
		if cmd.Flags().Lookup("format") != nil {
			_ = cmd.RegisterFlagCompletionFunc("format", commaList(formats))
		}
		if cmd.Flags().Lookup("cache") != nil {
			_ = cmd.RegisterFlagCompletionFunc("cache", fixed(cacheMemory, cacheFile, cacheRedis, cacheNone))
		}
		if strings.Contains(cmd.Use, "[file]") {
			cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
				if len(args) > 0 {
					return nil, cobra.ShellCompDirectiveNoFileComp
				}
				return profileExts, cobra.ShellCompDirectiveFilterFileExt
			}
		}
	}
}

// commaList completes the next element of a comma-separated list.
func commaList(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
		}
		out := make([]string, 0, len(values))
		for _, v := range values {
			out = append(out, prefix+v)
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}
