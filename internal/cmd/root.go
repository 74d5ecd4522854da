package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	authCmd "github.com/MacHu-GWU/docpack-confluence-go/internal/cmd/auth"
	confluenceCmd "github.com/MacHu-GWU/docpack-confluence-go/internal/cmd/confluence"
	configCmd "github.com/MacHu-GWU/docpack-confluence-go/internal/cmd/config"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/iostreams"
)

// BuildInfo contains version and build information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Execute runs the root command and returns an exit code.
func Execute(ios *iostreams.IOStreams, buildInfo BuildInfo) int {
	rootCmd := NewRootCmd(ios, buildInfo)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(ios.ErrOut, "Error: %s\n", err)
		return 1
	}
	return 0
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(ios *iostreams.IOStreams, buildInfo BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docpack",
		Short: "Confluence space crawler and exporter",
		Long: `docpack crawls a Confluence space's full page/folder hierarchy and
exports the selected pages to Markdown-in-XML documents on disk.

It provides commands for:
  - confluence crawl:  reconstruct a space's hierarchy past the server's depth-5 cap
  - confluence select: preview an include/exclude selection over a crawled hierarchy
  - confluence export: crawl, select, fetch bodies, and write documents to disk
  - confluence space/page: low-level read/create/delete operations

Get started by running 'docpack auth login' to authenticate with your Confluence site.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildInfo.Version,
	}

	// Set custom version template
	cmd.SetVersionTemplate(fmt.Sprintf("docpack version %s\ncommit: %s\nbuilt: %s\n",
		buildInfo.Version, buildInfo.Commit, buildInfo.Date))

	// Set I/O streams
	cmd.SetIn(ios.In)
	cmd.SetOut(ios.Out)
	cmd.SetErr(ios.ErrOut)

	// Add subcommands
	cmd.AddCommand(authCmd.NewCmdAuth(ios))
	cmd.AddCommand(confluenceCmd.NewCmdConfluence(ios))
	cmd.AddCommand(configCmd.NewCmdConfig(ios))
	cmd.AddCommand(newVersionCmd(ios, buildInfo))
	cmd.AddCommand(newCompletionCmd(ios))

	return cmd
}

// newVersionCmd creates the version command.
func newVersionCmd(ios *iostreams.IOStreams, buildInfo BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(ios.Out, "docpack version %s\n", buildInfo.Version)
			fmt.Fprintf(ios.Out, "commit: %s\n", buildInfo.Commit)
			fmt.Fprintf(ios.Out, "built: %s\n", buildInfo.Date)
		},
	}
}

// newCompletionCmd creates the completion command for shell autocompletion.
func newCompletionCmd(ios *iostreams.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for docpack.

To load completions:

Bash:
  $ source <(docpack completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ docpack completion bash > /etc/bash_completion.d/docpack
  # macOS:
  $ docpack completion bash > $(brew --prefix)/etc/bash_completion.d/docpack

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ docpack completion zsh > "${fpath[1]}/_docpack"

Fish:
  $ docpack completion fish | source
  # To load completions for each session, execute once:
  $ docpack completion fish > ~/.config/fish/completions/docpack.fish

PowerShell:
  PS> docpack completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> docpack completion powershell > docpack.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(ios.Out)
			case "zsh":
				return cmd.Root().GenZshCompletion(ios.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(ios.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(ios.Out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}
