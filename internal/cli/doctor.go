package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newbery/pyenv-uv-plugin/internal/config"
	"github.com/newbery/pyenv-uv-plugin/internal/linker"
	"github.com/newbery/pyenv-uv-plugin/internal/override"
	"github.com/newbery/pyenv-uv-plugin/internal/probe"
	"github.com/newbery/pyenv-uv-plugin/internal/pyenv"
	"github.com/newbery/pyenv-uv-plugin/internal/uv"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the pyenv-uv setup",
	Long:  `Run diagnostic checks on the host tooling, directory layout, override store, and registered installation links.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		checkTooling(out)
		checkLayout(cmd.Context(), out)
		checkOverrides(out)
		checkRegisteredLinks(out)
		return nil
	},
}

func checkTooling(w io.Writer) {
	fmt.Fprintln(w, "Tooling check:")
	for _, name := range pyenv.RequiredTools {
		path, err := exec.LookPath(name)
		if err != nil {
			fmt.Fprintf(w, "  [MISS] %s not found on PATH\n", name)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
	}
}

func checkLayout(ctx context.Context, w io.Writer) {
	fmt.Fprintln(w, "Layout check:")

	root, err := pyenv.Root()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] cannot resolve pyenv root: %v\n", err)
		return
	}
	if _, err := os.Stat(root); err != nil {
		fmt.Fprintf(w, "  [MISS] pyenv root %s does not exist\n", root)
	} else {
		fmt.Fprintf(w, "  [ OK ] pyenv root %s\n", root)
	}

	versionsDir, err := pyenv.VersionsPath()
	if err == nil {
		if _, statErr := os.Stat(versionsDir); statErr != nil {
			fmt.Fprintf(w, "  [MISS] versions directory %s does not exist\n", versionsDir)
		} else {
			fmt.Fprintf(w, "  [ OK ] versions directory %s\n", versionsDir)
		}
	}

	pythonDir := config.PythonDir()
	if pythonDir == "" {
		pythonDir, err = uv.PythonDir(ctx)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] cannot resolve uv python directory: %v\n", err)
			return
		}
	}
	if _, err := os.Stat(pythonDir); err != nil {
		fmt.Fprintf(w, "  [MISS] uv python directory %s does not exist\n", pythonDir)
		return
	}
	fmt.Fprintf(w, "  [ OK ] uv python directory %s\n", pythonDir)
}

func checkOverrides(w io.Writer) {
	fmt.Fprintln(w, "Override store check:")

	path, err := pyenv.OverridesPath()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] cannot resolve store path: %v\n", err)
		return
	}
	store := override.New(path)
	entries, err := store.Entries()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] cannot read %s: %v\n", path, err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintf(w, "  [ OK ] no pins recorded\n")
		return
	}
	for _, e := range entries {
		if _, err := probe.ParseVersion(e.Alias); err != nil {
			fmt.Fprintf(w, "  [WARN] pin %q is not a MAJOR.MINOR.PATCH alias\n", e.Alias)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s -> %s\n", e.Alias, e.Target)
	}
}

func checkRegisteredLinks(w io.Writer) {
	fmt.Fprintln(w, "Registered links check:")

	versionsDir, err := pyenv.VersionsPath()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] cannot resolve versions directory: %v\n", err)
		return
	}
	entries, err := os.ReadDir(versionsDir)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist (run 'pyenv-uv install')\n", versionsDir)
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] cannot read %s: %v\n", versionsDir, err)
		return
	}

	prefix := config.Prefix()
	found := false
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		found = true
		if entry.Type()&os.ModeSymlink == 0 {
			fmt.Fprintf(w, "  [WARN] %s carries the managed prefix but is not a symlink\n", name)
			continue
		}
		target, err := linker.ReadTarget(filepath.Join(versionsDir, name))
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: unreadable link: %v\n", name, err)
			continue
		}
		if info, statErr := os.Stat(target); statErr != nil || !info.IsDir() {
			fmt.Fprintf(w, "  [FAIL] %s: dangling (target %s is gone)\n", name, target)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s -> %s\n", name, target)
	}
	if !found {
		fmt.Fprintf(w, "  [INFO] no registered installations\n")
	}
}
