package reconcile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/newbery/pyenv-uv-plugin/internal/diag"
	"github.com/newbery/pyenv-uv-plugin/internal/linker"
	"github.com/newbery/pyenv-uv-plugin/internal/override"
)

// Action is one alias assignment the resolver hands to the link manager.
type Action struct {
	// Alias is the version string, which is also the symlink name.
	Alias string `json:"alias" yaml:"alias"`
	// Target is the chosen canonical installation directory.
	Target string `json:"target" yaml:"target"`
	// ID is the chosen installation's id.
	ID string `json:"id" yaml:"id"`
}

// Resolver picks one canonical installation per version.
type Resolver struct {
	Store       *override.Store
	Links       *linker.Manager
	VersionsDir string
}

// Resolve groups records by version and emits one Action per version that
// is safe to link. Version groups whose alias is held by a foreign entry
// are skipped with a warning; an operator pin beats the deterministic
// tie-break; an unresolvable pin is discarded with a warning, never fatal.
// Diagnostics go to w.
func (r *Resolver) Resolve(w io.Writer, records []Record) []Action {
	groups := make(map[string][]Record)
	for _, rec := range records {
		groups[rec.Version] = append(groups[rec.Version], rec)
	}

	versions := make([]string, 0, len(groups))
	for v := range groups {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	var actions []Action
	for _, version := range versions {
		group := groups[version]
		// The tie-break contract: byte-wise ascending installationId,
		// independent of enumeration order.
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })

		if prot, target := r.protected(version); prot {
			diag.Warnf(w, "not overriding existing alias %s (foreign target: %s)", version, target)
			continue
		}

		chosen, pinned := r.applyOverride(w, version, group)
		if !pinned {
			chosen = group[0]
			if len(group) > 1 {
				diag.Warnf(w, "multiple installations provide %s; choosing %s", version, chosen.ID)
				for _, member := range group {
					fmt.Fprintf(w, "  pyenv-uv pin %s %s\n", version, member.ID)
				}
			}
		}

		actions = append(actions, Action{Alias: version, Target: chosen.Path, ID: chosen.ID})
	}
	return actions
}

// protected reports whether an alias for version already exists and is not
// owned by this system. Such an alias is never modified.
func (r *Resolver) protected(version string) (bool, string) {
	name := filepath.Join(r.VersionsDir, version)
	info, err := os.Lstat(name)
	if err != nil {
		return false, ""
	}
	if info.Mode()&os.ModeSymlink == 0 {
		// A real directory here is a pyenv-installed version.
		return true, name
	}
	owned, target, err := r.Links.Owns(name)
	if err != nil {
		return true, name
	}
	return !owned, target
}

// applyOverride consults the override store for version and resolves the
// stored target against the group. Returns the pinned member when the
// override applies; otherwise reports that resolution should fall through
// to the deterministic tie-break.
func (r *Resolver) applyOverride(w io.Writer, version string, group []Record) (Record, bool) {
	target, ok, err := r.Store.Get(version)
	if err != nil {
		diag.Warnf(w, "cannot read override store: %v", err)
		return Record{}, false
	}
	if !ok {
		return Record{}, false
	}

	for _, member := range group {
		if matchesOverride(member, target) {
			if len(group) > 1 {
				diag.Notef(w, "using manual override for %s: %s", version, member.ID)
			}
			return member, true
		}
	}

	diag.Warnf(w, "override for %s (%s) does not match any installation; using the default choice", version, target)
	return Record{}, false
}

// matchesOverride reports whether the stored override target selects rec.
// An absolute path must name rec's existing installation directory; any
// other value is matched as an installationId, then as the installation
// directory's basename.
func matchesOverride(rec Record, target string) bool {
	if filepath.IsAbs(target) {
		if info, err := os.Stat(target); err != nil || !info.IsDir() {
			return false
		}
		return filepath.Clean(target) == filepath.Clean(rec.Path)
	}
	if target == rec.ID {
		return true
	}
	return target == filepath.Base(rec.Path)
}

// IsProtected reports whether an alias exists and is held by a foreign
// entry. Exposed for the commands that refuse to touch protected aliases.
func IsProtected(links *linker.Manager, versionsDir, alias string) (bool, error) {
	name := filepath.Join(versionsDir, alias)
	info, err := os.Lstat(name)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspecting %s: %w", name, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return true, nil
	}
	owned, _, err := links.Owns(name)
	if err != nil {
		return false, err
	}
	return !owned, nil
}
