package cli

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/newbery/pyenv-uv-plugin/internal/diag"
	"github.com/newbery/pyenv-uv-plugin/internal/pyenv"
	"github.com/newbery/pyenv-uv-plugin/internal/reconcile"
)

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
}

var pinCmd = &cobra.Command{
	Use:   "pin <version> <target>",
	Short: "Pin the canonical installation for a version",
	Long: `Record that the alias for <version> must point at <target>, where
<target> is a registered installation id (e.g. uv-cpython-3.12.2-...) or an
absolute installation path. The pin survives across refreshes until unpin.`,
	Args: cobra.ExactArgs(2),
	RunE: runPin,
}

var unpinCmd = &cobra.Command{
	Use:   "unpin <version>",
	Short: "Remove the pin for a version",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnpin,
}

func runPin(cmd *cobra.Command, args []string) error {
	version, target := args[0], args[1]
	if _, err := semver.StrictNewVersion(version); err != nil {
		return fmt.Errorf("invalid version %q: expected MAJOR.MINOR.PATCH", version)
	}

	if err := pyenv.RequireTools(); err != nil {
		return err
	}

	ctx := cmd.Context()
	opts, err := buildOptions(ctx)
	if err != nil {
		return err
	}

	if protected, perr := reconcile.IsProtected(opts.Links, opts.VersionsDir, version); perr == nil && protected {
		diag.Warnf(cmd.ErrOrStderr(), "alias %s is held by a foreign installation; the pin is recorded but will not take effect until it is released", version)
	}

	if err := opts.Store.Set(version, target); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s -> %s\n", version, target)

	return reconcile.Refresh(ctx, cmd.ErrOrStderr(), opts)
}

func runUnpin(cmd *cobra.Command, args []string) error {
	version := args[0]

	if err := pyenv.RequireTools(); err != nil {
		return err
	}

	ctx := cmd.Context()
	opts, err := buildOptions(ctx)
	if err != nil {
		return err
	}

	if err := opts.Store.Unset(version); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %s\n", version)

	return reconcile.Refresh(ctx, cmd.ErrOrStderr(), opts)
}
