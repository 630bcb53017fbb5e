// Package writer applies file mutations to a project directory.
//
// Every mode is idempotent: applying the same Mutation twice leaves the file
// byte-identical to the first application and reports Unchanged the second
// time. A mutation is either applied fully or skipped; there is no rollback
// across several mutations.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tracericochet/sampy/internal/output"
)

// Mode selects how a Mutation produces the target content.
type Mode int

// Mutation modes.
const (
	// Literal replaces the file content byte for byte.
	Literal Mode = iota
	// JSONMerge shallow-merges Fields into an existing JSON object.
	JSONMerge
	// ScriptsMerge shallow-merges Fields into the "scripts" object of a
	// package.json, leaving every other key in place.
	ScriptsMerge
	// PrependOnce prepends Content unless the file already contains Marker.
	PrependOnce
	// Delete removes the file when present.
	Delete
)

func (m Mode) String() string {
	switch m {
	case Literal:
		return "literal"
	case JSONMerge:
		return "json-merge"
	case ScriptsMerge:
		return "scripts-merge"
	case PrependOnce:
		return "prepend-once"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Field is one key of a JSON merge patch. Patches are ordered so new keys
// land in a predictable position.
type Field struct {
	Key   string
	Value any
}

// Mutation describes one file change relative to a project directory.
type Mutation struct {
	Path    string
	Mode    Mode
	Content string
	// Marker defaults to Content for PrependOnce.
	Marker string
	Fields []Field
	// Perm is enforced when set; otherwise new files get 0o644 and existing
	// files keep their mode.
	Perm os.FileMode
}

// Action is the effect a Mutation had on disk.
type Action int

// Actions reported by Apply.
const (
	Unchanged Action = iota
	Created
	Updated
	Deleted
)

func (a Action) String() string {
	switch a {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	default:
		return "unchanged"
	}
}

// Change records the outcome of one Apply.
type Change struct {
	Path   string
	Action Action
}

// Changed reports whether the file on disk was touched.
func (c Change) Changed() bool {
	return c.Action != Unchanged
}

// ErrNoManifest is returned by ScriptsMerge when package.json is absent.
var ErrNoManifest = output.NewUserError("could not find package.json in current directory, scripts not added")

// Apply performs m against dir. Filesystem failures are returned as system
// errors carrying the underlying cause.
func Apply(dir string, m Mutation) (Change, error) {
	path := filepath.Join(dir, m.Path)
	change := Change{Path: m.Path}

	existing, exists, err := readIfExists(path)
	if err != nil {
		return change, err
	}

	if m.Mode == Delete {
		if !exists {
			return change, nil
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return change, output.NewSystemErrorWithCause("failed to delete "+m.Path, err)
		}
		change.Action = Deleted
		return change, nil
	}

	next, err := render(m, existing, exists)
	if err != nil {
		return change, err
	}
	if exists && bytes.Equal(next, existing) {
		return fixMode(path, change, m.Perm)
	}

	if err := writeFile(path, next, m.Perm); err != nil {
		return change, output.NewSystemErrorWithCause("failed to write "+m.Path, err)
	}
	if exists {
		change.Action = Updated
	} else {
		change.Action = Created
	}
	return change, nil
}

func render(m Mutation, existing []byte, exists bool) ([]byte, error) {
	switch m.Mode {
	case Literal:
		return []byte(m.Content), nil

	case PrependOnce:
		marker := m.Marker
		if marker == "" {
			marker = m.Content
		}
		if !exists {
			return []byte(strings.TrimRight(m.Content, "\n") + "\n"), nil
		}
		if strings.Contains(string(existing), marker) {
			return existing, nil
		}
		return append([]byte(m.Content), existing...), nil

	case JSONMerge:
		if !exists || len(bytes.TrimSpace(existing)) == 0 {
			return MergeJSON(nil, m.Fields)
		}
		out, err := MergeJSON(existing, m.Fields)
		if err != nil {
			return nil, output.NewSystemErrorWithCause(m.Path+" is not a JSON object", err)
		}
		return out, nil

	case ScriptsMerge:
		if !exists {
			return nil, ErrNoManifest
		}
		out, err := MergeScripts(existing, m.Fields)
		if err != nil {
			return nil, output.NewSystemErrorWithCause("failed to update scripts in "+m.Path, err)
		}
		return out, nil

	default:
		return nil, output.SystemErrorf("unsupported mutation mode %s for %s", m.Mode, m.Path)
	}
}

func readIfExists(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	return nil, false, output.NewSystemErrorWithCause("failed to read "+filepath.Base(path), err)
}

// fixMode enforces perm on an unchanged file.
func fixMode(path string, change Change, perm os.FileMode) (Change, error) {
	if perm == 0 {
		return change, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return change, output.NewSystemErrorWithCause("failed to stat "+change.Path, err)
	}
	if info.Mode().Perm() == perm {
		return change, nil
	}
	if err := os.Chmod(path, perm); err != nil {
		return change, output.NewSystemErrorWithCause("failed to chmod "+change.Path, err)
	}
	change.Action = Updated
	return change, nil
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		// #nosec G306 -- project files are shared with editors and tooling
		return os.WriteFile(path, data, 0o644)
	}
	// #nosec G306 -- hooks need execute permission
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	// WriteFile keeps the old mode of an existing file.
	return os.Chmod(path, perm)
}
