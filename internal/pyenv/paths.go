package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names kept directly under $PYENV_ROOT by this plugin.
const (
	OverridesFile  = "uv-overrides"
	ConfigFileName = "uv-config.yaml"
	VersionsDir    = "versions"
)

// Root returns the pyenv root directory.
// It checks the PYENV_ROOT environment variable first,
// then falls back to ~/.pyenv.
func Root() (string, error) {
	if v := os.Getenv("PYENV_ROOT"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".pyenv"), nil
}

// VersionsPath returns the shared versions directory where both aliases and
// registered installation links live.
func VersionsPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, VersionsDir), nil
}

// OverridesPath returns the path to the override store file for this root.
func OverridesPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, OverridesFile), nil
}

// ConfigPath returns the path to the plugin config file for this root.
func ConfigPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFileName), nil
}
