package uv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PythonDir returns the directory uv installs managed pythons into.
// The UV_PYTHON_INSTALL_DIR environment variable wins; otherwise uv itself
// is asked via `uv python dir`.
func PythonDir(ctx context.Context) (string, error) {
	if v := os.Getenv("UV_PYTHON_INSTALL_DIR"); v != "" {
		return filepath.Clean(v), nil
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "uv", "python", "dir")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("uv python dir: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	dir := strings.TrimSpace(stdout.String())
	if dir == "" {
		return "", fmt.Errorf("uv python dir printed nothing")
	}
	return filepath.Clean(dir), nil
}

// Install runs `uv python install <version>`, streaming uv's output to w.
func Install(ctx context.Context, w io.Writer, version string) error {
	cmd := exec.CommandContext(ctx, "uv", "python", "install", version)
	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("uv python install %s: %w", version, err)
	}
	return nil
}

// Uninstall runs `uv python uninstall <version>`, streaming uv's output to w.
func Uninstall(ctx context.Context, w io.Writer, version string) error {
	cmd := exec.CommandContext(ctx, "uv", "python", "uninstall", version)
	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("uv python uninstall %s: %w", version, err)
	}
	return nil
}

// Builds returns the names of the build directories directly under the
// uv-managed python directory, e.g. cpython-3.12.7-linux-x86_64-gnu.
// A missing directory reads as empty.
func Builds(pythonDir string) ([]string, error) {
	entries, err := os.ReadDir(pythonDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pythonDir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// BuildsForVersion filters Builds down to the directories holding the given
// interpreter version. Build names are <impl>-<version>-<platform...>.
// A partial request like "3.12" matches any 3.12.x build, mirroring what
// `uv python install 3.12` would have installed.
func BuildsForVersion(pythonDir, version string) ([]string, error) {
	names, err := Builds(pythonDir)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, name := range names {
		parts := strings.SplitN(name, "-", 3)
		if len(parts) < 2 {
			continue
		}
		if parts[1] == version || strings.HasPrefix(parts[1], version+".") {
			matched = append(matched, name)
		}
	}
	return matched, nil
}
