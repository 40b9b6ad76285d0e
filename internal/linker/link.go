package linker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects how Link treats a name that already exists.
type Mode int

const (
	// ModeSafe replaces the name only if it is a symlink owned by this
	// system; anything else is refused with ErrAliasOccupied.
	ModeSafe Mode = iota
	// ModeForce removes whatever occupies the name and recreates it.
	ModeForce
)

// ErrAliasOccupied is returned in safe mode when the name is occupied by a
// foreign entry. Recoverable: the caller decides whether to warn or force.
var ErrAliasOccupied = errors.New("alias occupied by a foreign entry")

// Manager creates and replaces alias symlinks. ManagedRoot is the
// provenance root: a symlink target under it is considered owned by this
// system and may be replaced at any time.
type Manager struct {
	ManagedRoot string
}

// IsManagedPath reports whether path lies under the managed provenance
// root. Used uniformly by the resolver's protection check and by safe mode.
func (m *Manager) IsManagedPath(path string) bool {
	if m.ManagedRoot == "" || path == "" {
		return false
	}
	root := filepath.Clean(m.ManagedRoot)
	path = filepath.Clean(path)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// Link points the symlink at name to targetPath. The name's parent
// directory must exist; the target installation is never touched.
func (m *Manager) Link(name, targetPath string, mode Mode) error {
	info, err := os.Lstat(name)
	if os.IsNotExist(err) {
		return symlink(targetPath, name)
	}
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", name, err)
	}

	switch mode {
	case ModeForce:
		if err := os.RemoveAll(name); err != nil {
			return fmt.Errorf("removing %s: %w", name, err)
		}
		return symlink(targetPath, name)
	case ModeSafe:
		if info.Mode()&os.ModeSymlink == 0 {
			return fmt.Errorf("%w: %s is not a symlink", ErrAliasOccupied, name)
		}
		existing, err := ReadTarget(name)
		if err != nil {
			return fmt.Errorf("reading target of %s: %w", name, err)
		}
		if !m.IsManagedPath(existing) {
			return fmt.Errorf("%w: %s -> %s", ErrAliasOccupied, name, existing)
		}
		if err := os.Remove(name); err != nil {
			return fmt.Errorf("removing %s: %w", name, err)
		}
		return symlink(targetPath, name)
	default:
		return fmt.Errorf("unknown link mode %d", mode)
	}
}

// Unlink removes the symlink at name if this system owns it. Removing a
// foreign entry is refused with ErrAliasOccupied; a missing name is a no-op.
func (m *Manager) Unlink(name string) error {
	owned, _, err := m.Owns(name)
	if err != nil {
		return err
	}
	if !owned {
		if _, lerr := os.Lstat(name); os.IsNotExist(lerr) {
			return nil
		}
		return fmt.Errorf("%w: refusing to remove %s", ErrAliasOccupied, name)
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	return nil
}

// Owns reports whether name is a symlink whose target lies under the
// managed root, along with the target it points at. A missing name is not
// owned and not an error.
func (m *Manager) Owns(name string) (bool, string, error) {
	info, err := os.Lstat(name)
	if os.IsNotExist(err) {
		return false, "", nil
	}
	if err != nil {
		return false, "", fmt.Errorf("inspecting %s: %w", name, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, "", nil
	}
	target, err := ReadTarget(name)
	if err != nil {
		return false, "", fmt.Errorf("reading target of %s: %w", name, err)
	}
	return m.IsManagedPath(target), target, nil
}

// ReadTarget returns the target of the symlink at name, resolved to an
// absolute path when the link is relative.
func ReadTarget(name string) (string, error) {
	target, err := os.Readlink(name)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(name), target)
	}
	return filepath.Clean(target), nil
}

func symlink(target, name string) error {
	if err := os.Symlink(target, name); err != nil {
		return fmt.Errorf("creating symlink %s -> %s: %w", name, target, err)
	}
	return nil
}
