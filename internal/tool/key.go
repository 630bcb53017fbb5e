package tool

import "github.com/tracericochet/sampy/internal/output"

// Key identifies one configurable tool.
type Key string

// Tool keys.
const (
	NextClean     Key = "next-clean"
	ReactClean    Key = "react-clean"
	Prettier      Key = "prettier"
	ESLintNext    Key = "eslint-next"
	ESLintReact   Key = "eslint-react"
	TailwindNext  Key = "tailwind-next"
	TailwindReact Key = "tailwind-react"
	ShadcnNext    Key = "shadcn-next"
	ShadcnReact   Key = "shadcn-react"
	Zustand       Key = "zustand"
	Vitest        Key = "vitest"
	Commitlint    Key = "commitlint"
	Changelog     Key = "changelog"
	NextThemes    Key = "next-themes"
)

// Keys lists every tool in menu order.
func Keys() []Key {
	return []Key{
		NextClean, ReactClean,
		Prettier,
		ESLintNext, ESLintReact,
		TailwindNext, TailwindReact,
		ShadcnNext, ShadcnReact,
		Zustand, Vitest, Commitlint, Changelog,
		NextThemes,
	}
}

// Aliases maps alternate command names to keys.
var Aliases = map[string]Key{
	"eslint": ESLintNext,
}

// ParseKey resolves a command name or alias.
func ParseKey(name string) (Key, error) {
	if k, ok := Aliases[name]; ok {
		return k, nil
	}
	k := Key(name)
	if _, ok := Lookup(k); !ok {
		return "", output.UserErrorf("unknown tool %q", name)
	}
	return k, nil
}

// Lookup returns the descriptor for k.
func Lookup(k Key) (Descriptor, bool) {
	switch k {
	case NextClean:
		return nextClean(), true
	case ReactClean:
		return reactClean(), true
	case Prettier:
		return prettier(), true
	case ESLintNext:
		return eslint(ESLintNext, eslintNextFlavor), true
	case ESLintReact:
		return eslint(ESLintReact, eslintReactFlavor), true
	case TailwindNext:
		return tailwindNext(), true
	case TailwindReact:
		return tailwindReact(), true
	case ShadcnNext:
		return shadcn(ShadcnNext, "Next.js"), true
	case ShadcnReact:
		return shadcn(ShadcnReact, "Vite React"), true
	case Zustand:
		return zustand(), true
	case Vitest:
		return vitest(), true
	case Commitlint:
		return commitlint(), true
	case Changelog:
		return changelog(), true
	case NextThemes:
		return nextThemes(), true
	default:
		return Descriptor{}, false
	}
}
