package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newbery/pyenv-uv-plugin/internal/diag"
	"github.com/newbery/pyenv-uv-plugin/internal/linker"
	"github.com/newbery/pyenv-uv-plugin/internal/probe"
	"github.com/newbery/pyenv-uv-plugin/internal/pyenv"
	"github.com/newbery/pyenv-uv-plugin/internal/reconcile"
	"github.com/newbery/pyenv-uv-plugin/internal/uv"
)

var uninstallPurge bool

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallPurge, "purge", false, "Also remove the build from uv's python directory")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <installation-id>",
	Short: "Unregister a uv-managed installation from pyenv",
	Long: `Remove the registered link for <installation-id> and any version alias
this plugin owns that points into the removed installation, then refresh.
With --purge the build itself is removed via 'uv python uninstall'.`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	id := args[0]

	if err := pyenv.RequireTools(); err != nil {
		return err
	}

	ctx := cmd.Context()
	opts, err := buildOptions(ctx)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(id, opts.Prefix) {
		return fmt.Errorf("%q is not a managed installation id (expected prefix %q)", id, opts.Prefix)
	}

	linkPath := filepath.Join(opts.VersionsDir, id)
	target, err := linker.ReadTarget(linkPath)
	if err != nil {
		return fmt.Errorf("%s is not registered: %w", id, err)
	}

	if err := removeOwnedAliases(cmd, opts, target); err != nil {
		return err
	}

	if err := opts.Links.Unlink(linkPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Unregistered %s\n", id)

	if uninstallPurge {
		build := strings.TrimPrefix(id, opts.Prefix)
		parts := strings.SplitN(build, "-", 3)
		if len(parts) < 2 {
			return fmt.Errorf("cannot derive a version from %q for --purge", id)
		}
		if err := uv.Uninstall(ctx, cmd.OutOrStdout(), parts[1]); err != nil {
			return err
		}
	}

	return reconcile.Refresh(ctx, cmd.ErrOrStderr(), opts)
}

// removeOwnedAliases drops every alias this plugin owns whose target lies
// inside the installation being removed, so the following refresh can hand
// the alias to another candidate. Foreign aliases are never touched.
func removeOwnedAliases(cmd *cobra.Command, opts reconcile.Options, installPath string) error {
	entries, err := os.ReadDir(opts.VersionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading versions directory: %w", err)
	}

	installPath = filepath.Clean(installPath)
	for _, entry := range entries {
		name := entry.Name()
		if _, err := probe.ParseVersion(name); err != nil {
			continue
		}
		aliasPath := filepath.Join(opts.VersionsDir, name)
		owned, target, err := opts.Links.Owns(aliasPath)
		if err != nil || !owned {
			continue
		}
		if target != installPath && !strings.HasPrefix(target, installPath+string(filepath.Separator)) {
			continue
		}
		if err := opts.Links.Unlink(aliasPath); err != nil {
			return err
		}
		diag.Notef(cmd.ErrOrStderr(), "removed alias %s", name)
	}
	return nil
}
