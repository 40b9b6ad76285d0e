package cli

import (
	"context"
	"fmt"

	"github.com/newbery/pyenv-uv-plugin/internal/config"
	"github.com/newbery/pyenv-uv-plugin/internal/linker"
	"github.com/newbery/pyenv-uv-plugin/internal/override"
	"github.com/newbery/pyenv-uv-plugin/internal/probe"
	"github.com/newbery/pyenv-uv-plugin/internal/pyenv"
	"github.com/newbery/pyenv-uv-plugin/internal/reconcile"
	"github.com/newbery/pyenv-uv-plugin/internal/uv"
)

// buildOptions resolves the host environment into the wiring the
// reconciler needs: pyenv's versions directory, the override store, and
// the uv-managed provenance root.
func buildOptions(ctx context.Context) (reconcile.Options, error) {
	versionsDir, err := pyenv.VersionsPath()
	if err != nil {
		return reconcile.Options{}, fmt.Errorf("resolving versions directory: %w", err)
	}
	overridesPath, err := pyenv.OverridesPath()
	if err != nil {
		return reconcile.Options{}, fmt.Errorf("resolving override store path: %w", err)
	}

	pythonDir := config.PythonDir()
	if pythonDir == "" {
		pythonDir, err = uv.PythonDir(ctx)
		if err != nil {
			return reconcile.Options{}, fmt.Errorf("resolving uv python directory: %w", err)
		}
	}

	return reconcile.Options{
		VersionsDir: versionsDir,
		Prefix:      config.Prefix(),
		Prober:      &probe.Prober{Timeout: config.ProbeTimeout()},
		Store:       override.New(overridesPath),
		Links:       &linker.Manager{ManagedRoot: pythonDir},
		Rehash:      pyenv.Rehash,
	}, nil
}
