package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newbery/pyenv-uv-plugin/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "pyenv-uv",
	Short: "Bridge uv-installed CPython toolchains into pyenv",
	Long: `pyenv-uv registers CPython toolchains installed by uv under pyenv's
versions directory and keeps one X.Y.Z alias per interpreter version
pointing at a chosen canonical installation. Aliases installed by pyenv
itself or by other tools are never touched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}
