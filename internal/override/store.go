package override

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const delimiter = "\t"

// Entry is one persisted pin. Target is either an absolute installation
// path or a registered installation id; the resolver decides which.
type Entry struct {
	Alias  string
	Target string
}

// Store reads and writes the pin file for one managed root.
type Store struct {
	Path string
}

// New returns a Store backed by the file at path. The file need not exist.
func New(path string) *Store {
	return &Store{Path: path}
}

// Get returns the target pinned for alias. A missing store file reads as an
// empty store. If duplicate lines exist the first match wins; Set keeps the
// file duplicate-free, so this is defensive only.
func (s *Store) Get(alias string) (string, bool, error) {
	entries, err := s.Entries()
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.Alias == alias {
			return e.Target, true, nil
		}
	}
	return "", false, nil
}

// Set pins alias to target, replacing any existing entry for the same alias.
// Creates the store file and its directory on first use.
func (s *Store) Set(alias, target string) error {
	if err := checkField("alias", alias); err != nil {
		return err
	}
	if err := checkField("target", target); err != nil {
		return err
	}

	entries, err := s.Entries()
	if err != nil {
		return err
	}

	kept := make([]Entry, 0, len(entries)+1)
	for _, e := range entries {
		if e.Alias != alias {
			kept = append(kept, e)
		}
	}
	kept = append(kept, Entry{Alias: alias, Target: target})

	return s.write(kept)
}

// Unset removes the entry for alias. No-op if absent.
func (s *Store) Unset(alias string) error {
	entries, err := s.Entries()
	if err != nil {
		return err
	}

	kept := make([]Entry, 0, len(entries))
	found := false
	for _, e := range entries {
		if e.Alias == alias {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil
	}

	return s.write(kept)
}

// Entries returns every pin in file order. Malformed lines are skipped.
func (s *Store) Entries() ([]Entry, error) {
	f, err := os.Open(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening override store %s: %w", s.Path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, delimiter, 2)
		if len(fields) != 2 || fields[0] == "" {
			continue
		}
		entries = append(entries, Entry{Alias: fields[0], Target: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading override store %s: %w", s.Path, err)
	}
	return entries, nil
}

// write replaces the store atomically: build the new content in a temp file
// in the same directory, then rename over the old one.
func (s *Store) write(entries []Entry) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating override store directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp override store: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s%s%s\n", e.Alias, delimiter, e.Target); err != nil {
			tmp.Close()
			return fmt.Errorf("writing override store: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing override store: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting override store permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp override store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replacing override store %s: %w", s.Path, err)
	}
	return nil
}

func checkField(name, value string) error {
	if value == "" {
		return fmt.Errorf("override %s must not be empty", name)
	}
	if strings.ContainsAny(value, delimiter+"\n") {
		return fmt.Errorf("override %s %q must not contain tabs or newlines", name, value)
	}
	return nil
}
