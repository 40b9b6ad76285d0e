package reconcile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/newbery/pyenv-uv-plugin/internal/diag"
	"github.com/newbery/pyenv-uv-plugin/internal/linker"
)

// Collect enumerates the registered installation links in versionsDir
// (direct children that are symlinks named with the managed prefix) and
// probes each one for its version. Collection is best-effort: a link whose
// target is gone or whose probe fails is skipped with a warning, and a
// missing or unreadable versions directory yields no records rather than an
// error. Diagnostics go to w.
func Collect(ctx context.Context, w io.Writer, versionsDir, prefix string, prober VersionProber) []Record {
	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			diag.Warnf(w, "cannot read versions directory %s: %v", versionsDir, err)
		}
		return nil
	}

	var records []Record
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}

		target, err := linker.ReadTarget(filepath.Join(versionsDir, name))
		if err != nil {
			diag.Warnf(w, "skipping %s: unreadable link: %v", name, err)
			continue
		}
		info, err := os.Stat(target)
		if err != nil || !info.IsDir() {
			diag.Warnf(w, "skipping %s: installation directory %s is gone", name, target)
			continue
		}

		version, err := prober.Version(ctx, target)
		if err != nil {
			diag.Warnf(w, "skipping %s: %v", name, err)
			continue
		}

		records = append(records, Record{Version: version, Path: target, ID: name})
	}
	return records
}
