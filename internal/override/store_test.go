package override

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "uv-overrides"))
}

func TestGetMissingFile(t *testing.T) {
	s := newTestStore(t)

	target, ok, err := s.Get("3.12.2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, target)
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("3.12.2", "uv-cpython-3.12.2-b"))

	target, ok, err := s.Get("3.12.2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "uv-cpython-3.12.2-b", target)
}

func TestSetReplacesExistingEntry(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("3.12.2", "uv-cpython-3.12.2-a"))
	require.NoError(t, s.Set("3.12.2", "uv-cpython-3.12.2-b"))

	target, ok, err := s.Get("3.12.2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "uv-cpython-3.12.2-b", target)

	// Exactly one line for the alias after re-pinning.
	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.True(t, strings.HasPrefix(string(data), "3.12.2\t"))
}

func TestSetPreservesOtherEntries(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("3.11.9", "uv-cpython-3.11.9-a"))
	require.NoError(t, s.Set("3.12.2", "uv-cpython-3.12.2-b"))

	target, ok, err := s.Get("3.11.9")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "uv-cpython-3.11.9-a", target)
}

func TestUnset(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("3.12.2", "uv-cpython-3.12.2-b"))
	require.NoError(t, s.Unset("3.12.2"))

	_, ok, err := s.Get("3.12.2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnsetAbsentIsNoop(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Unset("3.12.2"))

	// The no-op must not create the file.
	_, err := os.Stat(s.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestGetFirstMatchWinsOnDuplicates(t *testing.T) {
	s := newTestStore(t)

	// A corrupted store with duplicate lines; Set never produces this.
	content := "3.12.2\tfirst\n3.12.2\tsecond\n"
	require.NoError(t, os.WriteFile(s.Path, []byte(content), 0644))

	target, ok, err := s.Get("3.12.2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", target)
}

func TestMalformedLinesSkipped(t *testing.T) {
	s := newTestStore(t)

	content := "no-delimiter-here\n\n3.12.2\tuv-cpython-3.12.2-a\n"
	require.NoError(t, os.WriteFile(s.Path, []byte(content), 0644))

	entries, err := s.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "3.12.2", entries[0].Alias)
}

func TestSetRejectsDelimiterInFields(t *testing.T) {
	s := newTestStore(t)

	assert.Error(t, s.Set("3.12.2\tx", "target"))
	assert.Error(t, s.Set("3.12.2", "bad\ttarget"))
	assert.Error(t, s.Set("", "target"))
	assert.Error(t, s.Set("3.12.2", ""))
}

func TestSetCreatesParentDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "dir", "uv-overrides"))

	require.NoError(t, s.Set("3.12.2", "uv-cpython-3.12.2-a"))

	_, ok, err := s.Get("3.12.2")
	require.NoError(t, err)
	assert.True(t, ok)
}
