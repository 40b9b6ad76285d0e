package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/newbery/pyenv-uv-plugin/internal/pyenv"
	"github.com/newbery/pyenv-uv-plugin/internal/reconcile"
)

var refreshDryRun bool

func init() {
	refreshCmd.Flags().BoolVar(&refreshDryRun, "dry-run", false, "Print the planned alias set as YAML without changing anything")
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reconcile version aliases with the registered installations",
	Long: `Probe every registered uv installation for its exact version, then make
sure each version has exactly one alias pointing at the canonical
installation. Foreign aliases are left alone; pyenv's shim cache is
rehashed afterwards.`,
	RunE: runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if err := pyenv.RequireTools(); err != nil {
		return err
	}

	ctx := cmd.Context()
	opts, err := buildOptions(ctx)
	if err != nil {
		return err
	}

	if refreshDryRun {
		plan := reconcile.Plan(ctx, cmd.ErrOrStderr(), opts)
		data, err := yaml.Marshal(plan)
		if err != nil {
			return fmt.Errorf("marshaling plan: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
		return err
	}

	return reconcile.Refresh(ctx, cmd.ErrOrStderr(), opts)
}
