package pyenv

import (
	"context"
	"fmt"
	"os/exec"
)

// RequiredTools are the external commands the plugin cannot run without.
var RequiredTools = []string{"pyenv", "uv"}

// RequireTools verifies that every required external command is on PATH.
// Called before any filesystem mutation; a missing tool aborts the run.
func RequireTools() error {
	for _, name := range RequiredTools {
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("required command %q not found on PATH: %w", name, err)
		}
	}
	return nil
}

// Rehash runs `pyenv rehash` so the host regenerates its shim cache.
// The exit status is propagated: alias changes are already on disk by the
// time this runs, and they are not rolled back on failure.
func Rehash(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "pyenv", "rehash")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pyenv rehash: %w: %s", err, out)
	}
	return nil
}
