package templates

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Builtin(t *testing.T) {
	s := New(t.TempDir(), "")

	tests := []struct {
		name     string
		contains string
	}{
		{"prettier/.prettierrc", `"singleQuote": true`},
		{"eslint-next/eslint.config.mjs", "@next/eslint-plugin-next"},
		{"eslint-react/eslint.config.mjs", "eslint-plugin-react"},
		{"vitest/vitest.config.mts", "setupFiles"},
		{"commitlint/commit-msg", "commitlint --edit"},
		{"changelog/.changelogrc", `"output": "CHANGELOG.md"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := s.Load(tt.name)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tmpl.Source != SourceBuiltin {
				t.Errorf("Source = %q, want built-in", tmpl.Source)
			}
			if !strings.Contains(tmpl.Content, tt.contains) {
				t.Errorf("content missing %q", tt.contains)
			}
		})
	}
}

func TestLoad_ResolutionOrder(t *testing.T) {
	project := t.TempDir()
	user := t.TempDir()
	name := "prettier/.prettierrc"

	write := func(dir, content string) {
		t.Helper()
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	s := New(project, user)
	write(user, "user")
	tmpl, err := s.Load(name)
	if err != nil || tmpl.Source != SourceUser || tmpl.Content != "user" {
		t.Fatalf("user override: %+v, %v", tmpl, err)
	}

	write(filepath.Join(project, ProjectDir), "project")
	tmpl, err = s.Load(name)
	if err != nil || tmpl.Source != SourceProject || tmpl.Content != "project" {
		t.Fatalf("project override: %+v, %v", tmpl, err)
	}

	infos, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var found bool
	for _, info := range infos {
		if info.Name == name {
			if found {
				t.Errorf("%s listed twice", name)
			}
			found = true
			if info.Source != SourceProject || !info.Overrides {
				t.Errorf("info = %+v, want project override", info)
			}
		}
	}
	if !found {
		t.Errorf("%s not listed", name)
	}
}

func TestLoad_NotFound(t *testing.T) {
	s := New(t.TempDir(), "")
	if _, err := s.Load("nope/missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if _, err := s.Load("../escape"); err == nil {
		t.Error("Load() should reject paths outside the template tree")
	}
	if got := s.Read("nope/missing.txt", "fallback"); got != "fallback" {
		t.Errorf("Read() = %q, want fallback", got)
	}
}

func TestBuiltins_IncludesDotfiles(t *testing.T) {
	names, err := Builtins()
	if err != nil {
		t.Fatalf("Builtins() error = %v", err)
	}
	joined := strings.Join(names, "\n")
	for _, want := range []string{"prettier/.prettierrc", "commitlint/.commitlintrc.ts", "changelog/.changelogrc"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Builtins() missing %s", want)
		}
	}
}
