package reconcile

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/newbery/pyenv-uv-plugin/internal/diag"
	"github.com/newbery/pyenv-uv-plugin/internal/linker"
	"github.com/newbery/pyenv-uv-plugin/internal/override"
)

// Options wires the refresh pipeline together.
type Options struct {
	VersionsDir string
	Prefix      string
	Prober      VersionProber
	Store       *override.Store
	Links       *linker.Manager
	// Rehash is the host's cache-invalidation hook, run unconditionally at
	// the end of a refresh. Its failure is the refresh's failure.
	Rehash func(context.Context) error
}

// Plan collects and resolves without touching the filesystem. Used by the
// refresh command's dry-run mode.
func Plan(ctx context.Context, w io.Writer, opts Options) []Action {
	records := Collect(ctx, w, opts.VersionsDir, opts.Prefix, opts.Prober)
	resolver := &Resolver{Store: opts.Store, Links: opts.Links, VersionsDir: opts.VersionsDir}
	return resolver.Resolve(w, records)
}

// Refresh drives the full pipeline: collect, resolve, link each chosen
// alias in safe mode, then invoke the rehash hook. Per-version failures are
// warnings, not aborts; an empty record set still rehashes. Aliases already
// written are not rolled back if the rehash hook fails.
func Refresh(ctx context.Context, w io.Writer, opts Options) error {
	for _, action := range Plan(ctx, w, opts) {
		name := filepath.Join(opts.VersionsDir, action.Alias)
		if err := opts.Links.Link(name, action.Target, linker.ModeSafe); err != nil {
			if errors.Is(err, linker.ErrAliasOccupied) {
				// The resolver's protection check ran earlier; losing the
				// race to another writer is the documented limitation.
				diag.Warnf(w, "not overriding alias %s: %v", action.Alias, err)
				continue
			}
			diag.Warnf(w, "cannot link alias %s: %v", action.Alias, err)
		}
	}

	return opts.Rehash(ctx)
}
