package tool

import (
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
)

const prettierFallback = `{
  "singleQuote": true,
  "trailingComma": "es5",
  "semi": true,
  "tabWidth": 2,
  "printWidth": 80
}
`

var prettierConfigs = []string{
	".prettierrc", ".prettierrc.json", ".prettierrc.js", ".prettierrc.mjs",
	"prettier.config.js", "prettier.config.mjs",
}

func prettier() Descriptor {
	pkgs := []string{"prettier"}
	return Descriptor{
		Key:         Prettier,
		Description: "Configure Prettier for your project",
		Label:       "Prettier",
		Group:       GroupSetup,
		Packages:    pkgs,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("", prettierConfigs...),
				Deps:       pkgs,
			})
			if err != nil {
				return Assessment{}, err
			}
			lvl := level(state.Has("prettier"), state.Found(), state.Manifest.HasScript("format"))
			return assess(state, Facts{"config": state.ConfigPath}, lvl, [3]string{
				"Do you want to install Prettier?",
				"Prettier is partially configured. Do you want to complete the setup?",
				"Prettier appears to be configured. Do you want to reconfigure it?",
			}), nil
		},

		Install: func(env Env) []string {
			return missing(env.Assessment.State.Manifest, pkgs)
		},

		Actions: func(env Env) ([]Action, error) {
			return []Action{
				scripts(
					"format", `prettier --write "src/**/*.{js,jsx,ts,tsx}"`,
					"format:check", `prettier --check "src/**/*.{js,jsx,ts,tsx}"`,
				),
				literal(".prettierrc", env.Templates.Read("prettier/.prettierrc", prettierFallback)),
			}, nil
		},

		Report: func(p *output.Printer, _ Env) {
			p.Hint("Format your sources with:")
			p.Code("pnpm format")
		},
	}
}
