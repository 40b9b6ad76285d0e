package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/newbery/pyenv-uv-plugin/internal/diag"
	"github.com/newbery/pyenv-uv-plugin/internal/linker"
	"github.com/newbery/pyenv-uv-plugin/internal/pyenv"
	"github.com/newbery/pyenv-uv-plugin/internal/reconcile"
	"github.com/newbery/pyenv-uv-plugin/internal/uv"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <version>",
	Short: "Install a CPython toolchain via uv and register it with pyenv",
	Long: `Run 'uv python install <version>', register the resulting build under
pyenv's versions directory with the managed prefix, and refresh version
aliases. <version> may be partial (3.12) or exact (3.12.7).`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	version := args[0]

	if err := pyenv.RequireTools(); err != nil {
		return err
	}

	ctx := cmd.Context()
	opts, err := buildOptions(ctx)
	if err != nil {
		return err
	}

	if err := uv.Install(ctx, cmd.OutOrStdout(), version); err != nil {
		return err
	}

	builds, err := uv.BuildsForVersion(opts.Links.ManagedRoot, version)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		return fmt.Errorf("uv reported success but no build for %s was found under %s", version, opts.Links.ManagedRoot)
	}

	if err := os.MkdirAll(opts.VersionsDir, 0755); err != nil {
		return fmt.Errorf("creating versions directory: %w", err)
	}

	for _, build := range builds {
		name := filepath.Join(opts.VersionsDir, opts.Prefix+build)
		target := filepath.Join(opts.Links.ManagedRoot, build)
		if err := opts.Links.Link(name, target, linker.ModeSafe); err != nil {
			if errors.Is(err, linker.ErrAliasOccupied) {
				diag.Warnf(cmd.ErrOrStderr(), "cannot register %s: %v", opts.Prefix+build, err)
				continue
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", opts.Prefix+build)
	}

	return reconcile.Refresh(ctx, cmd.ErrOrStderr(), opts)
}
