package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Candidate is one possible location of a configuration file. The candidate
// matches when the file exists and contains Pattern; an empty Pattern
// matches on existence alone.
type Candidate struct {
	Path    string
	Pattern string
}

// Query describes what a tool wants to know about the project.
type Query struct {
	// Candidates are tried in priority order; the first match wins.
	Candidates []Candidate
	// Deps are checked against dependencies and devDependencies.
	Deps []string
}

// State is a read-only snapshot of the project relevant to one tool.
type State struct {
	// HasManifest is false when package.json is absent.
	HasManifest bool
	// Manifest is nil when HasManifest is false.
	Manifest *Manifest
	// ConfigPath is the first matching candidate, relative to the project
	// directory, or "" when none matched.
	ConfigPath string
	// ConfigContent is the raw content of ConfigPath.
	ConfigContent string
	// Deps maps every queried dependency to its presence.
	Deps map[string]bool
}

// Has reports whether a queried dependency is present.
func (s State) Has(dep string) bool {
	return s.Deps[dep]
}

// Found reports whether a candidate matched.
func (s State) Found() bool {
	return s.ConfigPath != ""
}

// Probe inspects dir according to q. A missing manifest is not an error:
// every dependency resolves to absent and the caller decides whether to stop.
// A manifest that exists but cannot be parsed is returned as an error.
func Probe(dir string, q Query) (State, error) {
	state := State{Deps: make(map[string]bool, len(q.Deps))}

	manifest, err := ReadManifest(dir)
	switch {
	case err == nil:
		state.HasManifest = true
		state.Manifest = manifest
	case errors.Is(err, ErrNoManifest):
	default:
		return State{}, err
	}

	for _, dep := range q.Deps {
		state.Deps[dep] = manifest.Has(dep)
	}

	if path, content, ok := Match(dir, q.Candidates...); ok {
		state.ConfigPath = path
		state.ConfigContent = content
	}
	return state, nil
}

// Match returns the first candidate whose file exists and contains its
// pattern, along with the file content.
func Match(dir string, candidates ...Candidate) (path, content string, ok bool) {
	for _, c := range candidates {
		data, err := os.ReadFile(filepath.Join(dir, c.Path))
		if err != nil {
			continue
		}
		if c.Pattern == "" || strings.Contains(string(data), c.Pattern) {
			return c.Path, string(data), true
		}
	}
	return "", "", false
}

// Find returns the first of paths (relative to dir) that exists as a regular
// file, or "" when none do.
func Find(dir string, paths ...string) string {
	for _, p := range paths {
		info, err := os.Stat(filepath.Join(dir, p))
		if err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Exists reports whether rel exists under dir (file or directory).
func Exists(dir, rel string) bool {
	_, err := os.Stat(filepath.Join(dir, rel))
	return err == nil
}

// IsDir reports whether rel is a directory under dir.
func IsDir(dir, rel string) bool {
	info, err := os.Stat(filepath.Join(dir, rel))
	return err == nil && info.IsDir()
}

// NonEmptyDir reports whether rel is a directory containing at least one entry.
func NonEmptyDir(dir, rel string) bool {
	entries, err := os.ReadDir(filepath.Join(dir, rel))
	return err == nil && len(entries) > 0
}
