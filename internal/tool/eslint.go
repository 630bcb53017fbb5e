package tool

import (
	"fmt"

	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
	"github.com/tracericochet/sampy/internal/writer"
)

const (
	eslintConfigFile = "eslint.config.mjs"
	vscodeSettings   = ".vscode/settings.json"
)

var eslintConfigs = []string{
	"eslint.config.js", "eslint.config.mjs",
	".eslintrc", ".eslintrc.js", ".eslintrc.json", ".eslintrc.yaml", ".eslintrc.yml",
}

type eslintFlavor struct {
	name     string
	template string
	packages []string
}

var eslintNextFlavor = eslintFlavor{
	name:     "Next.js",
	template: "eslint-next/eslint.config.mjs",
	packages: []string{
		"eslint@9",
		"@next/eslint-plugin-next",
		"@stylistic/eslint-plugin",
		"@typescript-eslint/eslint-plugin",
		"@typescript-eslint/parser",
		"eslint-plugin-import",
		"eslint-plugin-react-hooks",
		"eslint-plugin-simple-import-sort",
		"eslint-plugin-unused-imports",
		"eslint-plugin-react-refresh",
		"globals",
	},
}

var eslintReactFlavor = eslintFlavor{
	name:     "Vite React",
	template: "eslint-react/eslint.config.mjs",
	packages: []string{
		"eslint@9",
		"@stylistic/eslint-plugin",
		"@typescript-eslint/eslint-plugin",
		"@typescript-eslint/parser",
		"eslint-plugin-import",
		"eslint-plugin-react",
		"eslint-plugin-react-hooks",
		"eslint-plugin-react-refresh",
		"eslint-plugin-simple-import-sort",
		"eslint-plugin-unused-imports",
		"globals",
	},
}

// vscodeFields are the editor settings merged for ESLint + Prettier.
func vscodeFields() []writer.Field {
	languages := []string{"javascript", "javascriptreact", "typescript", "typescriptreact"}
	eslintFormatter := map[string]string{"editor.defaultFormatter": "dbaeumer.vscode-eslint"}

	fields := []writer.Field{
		{Key: "prettier.enable", Value: true},
		{Key: "eslint.enable", Value: true},
		{Key: "editor.formatOnSave", Value: true},
		{Key: "editor.defaultFormatter", Value: nil},
		{Key: "editor.codeActionsOnSave", Value: map[string]string{"source.fixAll.eslint": "always"}},
	}
	for _, lang := range languages {
		fields = append(fields, writer.Field{Key: "[" + lang + "]", Value: eslintFormatter})
	}
	return append(fields,
		writer.Field{Key: "eslint.workingDirectories", Value: []map[string]string{{"mode": "auto"}}},
		writer.Field{Key: "css.lint.unknownAtRules", Value: "ignore"},
		writer.Field{Key: "eslint.useFlatConfig", Value: true},
		writer.Field{Key: "eslint.format.enable", Value: true},
		writer.Field{Key: "eslint.options", Value: map[string]string{"overrideConfigFile": eslintConfigFile}},
		writer.Field{Key: "eslint.validate", Value: languages},
	)
}

func eslint(key Key, flavor eslintFlavor) Descriptor {
	return Descriptor{
		Key:         key,
		Description: fmt.Sprintf("Configure ESLint v9 flat config for %s projects", flavor.name),
		Label:       "ESLint",
		Group:       GroupSetup,
		Packages:    flavor.packages,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("", eslintConfigs...),
				Deps:       []string{"eslint"},
			})
			if err != nil {
				return Assessment{}, err
			}
			facts := Facts{
				"config": state.ConfigPath,
				"vscode": project.Find(dir, vscodeSettings),
			}
			// An existing config of any shape counts as configured.
			lvl := NotConfigured
			switch {
			case state.Found():
				lvl = Configured
			case state.Has("eslint"):
				lvl = Partial
			}
			return assess(state, facts, lvl, [3]string{
				"Do you want to install ESLint and related plugins?",
				"ESLint is installed but has no configuration. Do you want to configure it?",
				fmt.Sprintf("An existing ESLint config (%s) was found. Do you want to overwrite it with the new configuration?", state.ConfigPath),
			}), nil
		},

		Questions: func(a Assessment) []prompt.Question {
			if !a.Facts.Has("vscode") {
				return nil
			}
			return []prompt.Question{{
				Kind:    prompt.Confirm,
				Name:    "vscode",
				Message: "An existing .vscode/settings.json was found. Do you want to update it with ESLint and Prettier settings?",
				Default: false,
			}}
		},

		Install: func(env Env) []string {
			return missing(env.Assessment.State.Manifest, flavor.packages)
		},

		Actions: func(env Env) ([]Action, error) {
			tmpl, err := env.Templates.Load(flavor.template)
			if err != nil {
				return nil, output.NewSystemErrorWithCause("ESLint template file not found, configuration not created", err)
			}

			actions := []Action{scripts(
				"lint", `eslint "**/*.{js,jsx,ts,tsx}"`,
				"lint:fix", `eslint "**/*.{js,jsx,ts,tsx}" --fix`,
			)}
			if old := env.Assessment.Facts["config"]; old != "" && old != eslintConfigFile {
				actions = append(actions, remove(old))
			}
			actions = append(actions, literal(eslintConfigFile, tmpl.Content))

			if !env.Assessment.Facts.Has("vscode") || env.Answers.Bool("vscode") {
				actions = append(actions, Write{writer.Mutation{
					Path:   vscodeSettings,
					Mode:   writer.JSONMerge,
					Fields: vscodeFields(),
				}})
			}
			return actions, nil
		},

		Report: func(p *output.Printer, _ Env) {
			p.Hint("If ESLint reports files not included in tsconfig.json, add them to tsconfig.json or narrow the files pattern in %s.", eslintConfigFile)
		},
	}
}
