package reconcile

import "context"

// Record describes one successfully probed installation. Records are
// rebuilt from scratch on every refresh and never persisted.
type Record struct {
	// Version is the exact X.Y.Z string the interpreter reported.
	Version string `json:"version" yaml:"version"`
	// Path is the resolved installation directory.
	Path string `json:"path" yaml:"path"`
	// ID is the registered link's basename, prefix included. Stable across
	// runs as long as the installation is not re-registered.
	ID string `json:"id" yaml:"id"`
}

// VersionProber reports the exact version of the installation at a
// directory. Implemented by probe.Prober; faked in tests.
type VersionProber interface {
	Version(ctx context.Context, installDir string) (string, error)
}
