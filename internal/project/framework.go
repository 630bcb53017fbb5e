package project

import "errors"

// Framework classifies a project for the installer menu.
type Framework string

// Framework tags.
const (
	FrameworkNext      Framework = "next"       // full-stack framework
	FrameworkViteReact Framework = "vite-react" // bundler + UI library
	FrameworkReact     Framework = "react"      // UI library only
	FrameworkUnknown   Framework = "unknown"
)

// String returns the tag.
func (f Framework) String() string { return string(f) }

// Label returns a human-readable name.
func (f Framework) Label() string {
	switch f {
	case FrameworkNext:
		return "Next.js"
	case FrameworkViteReact:
		return "Vite + React"
	case FrameworkReact:
		return "React"
	default:
		return "unknown"
	}
}

// Classify maps a manifest to a framework tag. A nil manifest is unknown.
func Classify(m *Manifest) Framework {
	switch {
	case m.Has("next"):
		return FrameworkNext
	case m.Has("vite") && m.HasAny("react", "@vitejs/plugin-react"):
		return FrameworkViteReact
	case m.Has("react"):
		return FrameworkReact
	default:
		return FrameworkUnknown
	}
}

// DetectFramework reads dir/package.json once and classifies it.
// A missing manifest is FrameworkUnknown; a malformed one is an error.
func DetectFramework(dir string) (Framework, error) {
	m, err := ReadManifest(dir)
	if errors.Is(err, ErrNoManifest) {
		return FrameworkUnknown, nil
	}
	if err != nil {
		return FrameworkUnknown, err
	}
	return Classify(m), nil
}
