package tool

import (
	"strings"

	"github.com/tracericochet/sampy/internal/project"
)

// tailwindImport is the Tailwind v4 stylesheet directive.
const tailwindImport = `@import "tailwindcss"`

// missing returns the packages in pkgs that m does not list. Version
// suffixes such as eslint@9 are ignored when matching.
func missing(m *project.Manifest, pkgs []string) []string {
	var out []string
	for _, p := range pkgs {
		if !m.Has(packageName(p)) {
			out = append(out, p)
		}
	}
	return out
}

// packageName strips a version suffix from a package spec.
func packageName(spec string) string {
	if i := strings.LastIndex(spec, "@"); i > 0 {
		return spec[:i]
	}
	return spec
}

// candidates builds existence-or-pattern probe candidates for paths.
func candidates(pattern string, paths ...string) []project.Candidate {
	out := make([]project.Candidate, 0, len(paths))
	for _, p := range paths {
		out = append(out, project.Candidate{Path: p, Pattern: pattern})
	}
	return out
}

// level grades a tool from how many of its checks passed.
func level(checks ...bool) Level {
	n := 0
	for _, ok := range checks {
		if ok {
			n++
		}
	}
	switch n {
	case 0:
		return NotConfigured
	case len(checks):
		return Configured
	default:
		return Partial
	}
}

// assess builds an Assessment with the standard defaults: reconfiguring a
// configured tool defaults to no, everything else to yes.
func assess(state project.State, facts Facts, lvl Level, messages [3]string) Assessment {
	return Assessment{
		Level:   lvl,
		Message: messages[lvl],
		Default: lvl != Configured,
		State:   state,
		Facts:   facts,
	}
}
