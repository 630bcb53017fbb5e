// Package templates resolves the files sampy scaffolds into a project.
//
// Templates are addressed by slash-separated names such as
// "eslint-next/eslint.config.mjs". Resolution order is project-local
// (.sampy/templates under the project), then the user's template directory,
// then the copies embedded in the binary.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

//go:embed all:files
var builtinFS embed.FS

const builtinRoot = "files"

// ProjectDir is the project-local override directory, relative to the project.
const ProjectDir = ".sampy/templates"

// Source identifies where a template was loaded from.
type Source string

// Template sources in resolution order.
const (
	SourceProject Source = "project"
	SourceUser    Source = "user"
	SourceBuiltin Source = "built-in"
)

// ErrNotFound is returned when no source provides a template.
var ErrNotFound = errors.New("template not found")

// Template is a resolved template file.
type Template struct {
	Name    string
	Content string
	Source  Source
	// Path is the override file on disk; empty for built-ins.
	Path string
}

// Info describes one available template for listing.
type Info struct {
	Name   string
	Source Source
	// Overrides reports whether the entry shadows a built-in.
	Overrides bool
}

// Store resolves templates for one project.
type Store struct {
	projectDir string
	userDir    string
}

// New returns a Store. projectDir is the target project; userDir is the
// user's template directory and may be empty.
func New(projectDir, userDir string) *Store {
	return &Store{projectDir: projectDir, userDir: userDir}
}

// Load finds a template by name.
func (s *Store) Load(name string) (*Template, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid template name %q", name)
	}

	for _, src := range s.overrideDirs() {
		path := filepath.Join(src.dir, filepath.FromSlash(name))
		data, err := os.ReadFile(path)
		if err == nil {
			return &Template{Name: name, Content: string(data), Source: src.source, Path: path}, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}
	}

	data, err := builtinFS.ReadFile(builtinRoot + "/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &Template{Name: name, Content: string(data), Source: SourceBuiltin}, nil
}

// Read returns the content of a template, or fallback when no source has it.
func (s *Store) Read(name, fallback string) string {
	tmpl, err := s.Load(name)
	if err != nil {
		return fallback
	}
	return tmpl.Content
}

// List returns every available template, overrides first, sorted by name
// within each source. Built-ins shadowed by an override are folded into the
// overriding entry.
func (s *Store) List() ([]Info, error) {
	seen := make(map[string]bool)
	var infos []Info

	for _, src := range s.overrideDirs() {
		names, err := listDir(os.DirFS(src.dir), ".")
		if err != nil {
			continue // directory might not exist
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			infos = append(infos, Info{Name: name, Source: src.source})
		}
	}

	builtins, err := Builtins()
	if err != nil {
		return nil, err
	}
	isBuiltin := make(map[string]bool, len(builtins))
	for _, name := range builtins {
		isBuiltin[name] = true
		if !seen[name] {
			infos = append(infos, Info{Name: name, Source: SourceBuiltin})
		}
	}
	for i := range infos {
		if infos[i].Source != SourceBuiltin && isBuiltin[infos[i].Name] {
			infos[i].Overrides = true
		}
	}
	return infos, nil
}

// Builtins lists the names of the embedded templates.
func Builtins() ([]string, error) {
	sub, err := fs.Sub(builtinFS, builtinRoot)
	if err != nil {
		return nil, err
	}
	return listDir(sub, ".")
}

type overrideDir struct {
	source Source
	dir    string
}

func (s *Store) overrideDirs() []overrideDir {
	var dirs []overrideDir
	if s.projectDir != "" {
		dirs = append(dirs, overrideDir{SourceProject, filepath.Join(s.projectDir, filepath.FromSlash(ProjectDir))})
	}
	if s.userDir != "" {
		dirs = append(dirs, overrideDir{SourceUser, s.userDir})
	}
	return dirs
}

func listDir(fsys fs.FS, root string) ([]string, error) {
	var names []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
