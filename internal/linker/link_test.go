package linker

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) (*Manager, string, string) {
	t.Helper()
	tmp := t.TempDir()
	managed := filepath.Join(tmp, "uv", "python")
	versions := filepath.Join(tmp, "versions")
	for _, dir := range []string{managed, versions} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return &Manager{ManagedRoot: managed}, managed, versions
}

func mkInstall(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLinkCreatesMissingName(t *testing.T) {
	m, managed, versions := newTestManager(t)
	target := mkInstall(t, managed, "cpython-3.12.7-a")
	name := filepath.Join(versions, "3.12.7")

	if err := m.Link(name, target, ModeSafe); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	got, err := os.Readlink(name)
	if err != nil {
		t.Fatalf("Readlink failed: %v", err)
	}
	if got != target {
		t.Errorf("link target = %q, want %q", got, target)
	}
}

func TestSafeModeReplacesOwnedAlias(t *testing.T) {
	m, managed, versions := newTestManager(t)
	old := mkInstall(t, managed, "cpython-3.12.7-a")
	next := mkInstall(t, managed, "cpython-3.12.7-b")
	name := filepath.Join(versions, "3.12.7")

	if err := m.Link(name, old, ModeSafe); err != nil {
		t.Fatal(err)
	}
	if err := m.Link(name, next, ModeSafe); err != nil {
		t.Fatalf("replacing owned alias failed: %v", err)
	}

	got, _ := os.Readlink(name)
	if got != next {
		t.Errorf("link target = %q, want %q", got, next)
	}
}

func TestSafeModeRefusesForeignSymlink(t *testing.T) {
	m, _, versions := newTestManager(t)
	foreign := t.TempDir()
	name := filepath.Join(versions, "3.12.7")
	if err := os.Symlink(foreign, name); err != nil {
		t.Fatal(err)
	}

	err := m.Link(name, filepath.Join(m.ManagedRoot, "cpython-3.12.7-a"), ModeSafe)
	if err == nil {
		t.Fatal("expected ErrAliasOccupied, got nil")
	}
	if got, _ := os.Readlink(name); got != foreign {
		t.Errorf("foreign alias was modified: now points at %q", got)
	}
}

func TestSafeModeRefusesRegularFile(t *testing.T) {
	m, managed, versions := newTestManager(t)
	name := filepath.Join(versions, "3.12.7")
	if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := m.Link(name, filepath.Join(managed, "cpython-3.12.7-a"), ModeSafe)
	if err == nil {
		t.Fatal("expected ErrAliasOccupied, got nil")
	}
}

func TestForceModeReplacesAnything(t *testing.T) {
	m, managed, versions := newTestManager(t)
	target := mkInstall(t, managed, "cpython-3.12.7-a")
	name := filepath.Join(versions, "3.12.7")
	if err := os.MkdirAll(name, 0755); err != nil {
		t.Fatal(err)
	}

	if err := m.Link(name, target, ModeForce); err != nil {
		t.Fatalf("force link failed: %v", err)
	}
	got, err := os.Readlink(name)
	if err != nil {
		t.Fatalf("Readlink failed: %v", err)
	}
	if got != target {
		t.Errorf("link target = %q, want %q", got, target)
	}
}

func TestUnlink(t *testing.T) {
	m, managed, versions := newTestManager(t)
	target := mkInstall(t, managed, "cpython-3.12.7-a")
	name := filepath.Join(versions, "3.12.7")
	if err := m.Link(name, target, ModeSafe); err != nil {
		t.Fatal(err)
	}

	if err := m.Unlink(name); err != nil {
		t.Fatalf("Unlink failed: %v", err)
	}
	if _, err := os.Lstat(name); !os.IsNotExist(err) {
		t.Error("alias still exists after Unlink")
	}

	// Removing it again is a no-op.
	if err := m.Unlink(name); err != nil {
		t.Errorf("Unlink of missing name: %v", err)
	}
}

func TestUnlinkRefusesForeign(t *testing.T) {
	m, _, versions := newTestManager(t)
	name := filepath.Join(versions, "3.12.7")
	if err := os.Symlink(t.TempDir(), name); err != nil {
		t.Fatal(err)
	}

	if err := m.Unlink(name); err == nil {
		t.Fatal("expected refusal for foreign alias, got nil")
	}
	if _, err := os.Lstat(name); err != nil {
		t.Error("foreign alias was removed")
	}
}

func TestIsManagedPath(t *testing.T) {
	m := &Manager{ManagedRoot: "/data/uv/python"}

	cases := []struct {
		path string
		want bool
	}{
		{"/data/uv/python/cpython-3.12.7-a", true},
		{"/data/uv/python", true},
		{"/data/uv/python/../elsewhere", false},
		{"/data/uv/pythonian/cpython-3.12.7-a", false},
		{"/usr/local/python", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := m.IsManagedPath(tc.path); got != tc.want {
			t.Errorf("IsManagedPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestReadTargetResolvesRelative(t *testing.T) {
	tmp := t.TempDir()
	name := filepath.Join(tmp, "link")
	if err := os.Symlink(filepath.Join("sub", "dir"), name); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTarget(name)
	if err != nil {
		t.Fatalf("ReadTarget failed: %v", err)
	}
	want := filepath.Join(tmp, "sub", "dir")
	if got != want {
		t.Errorf("ReadTarget = %q, want %q", got, want)
	}
}
