package tool

import (
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
)

const exampleTestFile = "src/__tests__/example.test.tsx"

var vitestConfigs = []string{"vitest.config.mts", "vitest.config.ts", "vitest.config.js", "vitest.config.mjs"}

func vitest() Descriptor {
	pkgs := []string{
		"vitest",
		"@vitejs/plugin-react",
		"jsdom",
		"@testing-library/react",
		"@testing-library/dom",
		"@testing-library/jest-dom",
		"vite-tsconfig-paths",
	}
	return Descriptor{
		Key:         Vitest,
		Description: "Configure Vitest for testing",
		Label:       "Vitest",
		Group:       GroupSetup,
		Packages:    pkgs,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("", vitestConfigs...),
				Deps:       []string{"vitest"},
			})
			if err != nil {
				return Assessment{}, err
			}
			lvl := level(state.Has("vitest"), state.Found(), state.Manifest.HasScript("test"))
			return assess(state, Facts{"config": state.ConfigPath}, lvl, [3]string{
				"Do you want to set up Vitest for testing?",
				"Vitest is partially configured. Do you want to complete the setup?",
				"Vitest appears to be configured. Do you want to reconfigure it?",
			}), nil
		},

		Questions: func(Assessment) []prompt.Question {
			return []prompt.Question{{
				Kind:    prompt.Confirm,
				Name:    "example",
				Message: "Do you want to create an example test file?",
				Default: true,
			}}
		},

		Install: func(env Env) []string {
			return missing(env.Assessment.State.Manifest, pkgs)
		},

		Actions: func(env Env) ([]Action, error) {
			files := []string{"vitest.config.mts", "vitest.setup.ts"}
			if env.Answers.Bool("example") {
				files = append(files, "example.test.tsx")
			}
			var actions []Action
			for _, name := range files {
				tmpl, err := env.Templates.Load("vitest/" + name)
				if err != nil {
					return nil, output.NewSystemErrorWithCause("could not find Vitest template "+name, err)
				}
				target := name
				if name == "example.test.tsx" {
					target = exampleTestFile
				}
				actions = append(actions, literal(target, tmpl.Content))
			}
			return append(actions, scripts(
				"test", "vitest run",
				"test:watch", "vitest",
				"test:ui", "vitest --ui",
				"test:coverage", "vitest run --coverage",
			)), nil
		},

		Report: func(p *output.Printer, _ Env) {
			p.Hint("You can now run tests with:")
			p.Code("pnpm test           # run tests once\npnpm test:watch     # watch mode\npnpm test:coverage  # coverage report")
			p.Hint("For UI mode, install @vitest/ui and run pnpm test:ui:")
			p.Code("pnpm add -D @vitest/ui")
		},
	}
}
