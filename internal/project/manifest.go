// Package project inspects a JavaScript/TypeScript project directory: its
// package.json manifest, existing tool configuration files and framework.
//
// Everything in this package is read-only. State is recomputed on every call;
// nothing is cached between tool commands.
package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/tracericochet/sampy/internal/output"
)

// ManifestFile is the name of the project manifest.
const ManifestFile = "package.json"

// Manifest is the subset of package.json sampy reads.
type Manifest struct {
	Name            string                     `json:"name"`
	Dependencies    map[string]json.RawMessage `json:"dependencies"`
	DevDependencies map[string]json.RawMessage `json:"devDependencies"`
	Scripts         map[string]string          `json:"scripts"`
}

// ErrNoManifest is returned by ReadManifest when package.json is absent.
var ErrNoManifest = errors.New("could not find package.json in current directory")

// ReadManifest parses dir/package.json.
// Returns ErrNoManifest when the file does not exist and a system error when
// it exists but cannot be read or parsed.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoManifest
		}
		return nil, output.NewSystemErrorWithCause("failed to read package.json", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, output.NewSystemErrorWithCause("package.json is not valid JSON", err)
	}
	return &m, nil
}

// Has reports whether name appears in dependencies or devDependencies.
func (m *Manifest) Has(name string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

// HasAny reports whether any of names is a dependency.
func (m *Manifest) HasAny(names ...string) bool {
	for _, name := range names {
		if m.Has(name) {
			return true
		}
	}
	return false
}

// HasScript reports whether scripts defines name.
func (m *Manifest) HasScript(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Scripts[name]
	return ok
}
