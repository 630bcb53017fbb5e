package tool

import (
	"fmt"

	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
)

const shadcnConfigFile = "components.json"

var shadcnDeps = []string{"@radix-ui/react-slot", "class-variance-authority", "clsx"}

var shadcnComponents = []prompt.Choice{
	{Label: "Button", Value: "button", Checked: true},
	{Label: "Input", Value: "input", Checked: true},
	{Label: "Label", Value: "label", Checked: true},
	{Label: "Card", Value: "card", Checked: true},
	{Label: "Dialog", Value: "dialog"},
	{Label: "Dropdown Menu", Value: "dropdown-menu"},
	{Label: "Form", Value: "form"},
	{Label: "Select", Value: "select"},
	{Label: "Textarea", Value: "textarea"},
	{Label: "Toast", Value: "toast"},
	{Label: "Tooltip", Value: "tooltip"},
	{Label: "Badge", Value: "badge"},
	{Label: "Avatar", Value: "avatar"},
	{Label: "Alert", Value: "alert"},
	{Label: "Separator", Value: "separator"},
}

func shadcn(key Key, name string) Descriptor {
	return Descriptor{
		Key:         key,
		Description: fmt.Sprintf("Configure shadcn/ui for %s projects", name),
		Label:       "shadcn/ui",
		Group:       GroupSetup,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("", shadcnConfigFile),
				Deps:       shadcnDeps,
			})
			if err != nil {
				return Assessment{}, err
			}
			facts := Facts{"config": state.ConfigPath}
			for _, ui := range []string{"components/ui", "src/components/ui"} {
				if project.NonEmptyDir(dir, ui) {
					facts["components"] = ui
					break
				}
			}
			hasDeps := state.Manifest.HasAny(shadcnDeps...)

			a := Assessment{Level: NotConfigured, Default: true, State: state, Facts: facts,
				Message: fmt.Sprintf("Do you want to initialize shadcn/ui for %s?", name)}
			switch {
			case hasDeps && state.Found() && facts.Has("components"):
				a.Level = Configured
				a.Default = false
				a.Message = "shadcn/ui appears to be fully configured. Do you want to add more components?"
			case hasDeps && state.Found():
				a.Level = Partial
				a.Message = "shadcn/ui is initialized but no components found. Do you want to add components?"
			case hasDeps || state.Found():
				a.Level = Partial
				a.Message = "shadcn/ui dependencies found but not initialized. Do you want to initialize it?"
			}
			return a, nil
		},

		Questions: func(Assessment) []prompt.Question {
			return []prompt.Question{
				{
					Kind:    prompt.Confirm,
					Name:    "addComponents",
					Message: "Do you want to add some common components?",
					Default: true,
				},
				{
					Kind:    prompt.MultiSelect,
					Name:    "components",
					Message: "Select components to add:",
					Choices: shadcnComponents,
					When:    func(a prompt.Answers) bool { return a.Bool("addComponents") },
				},
			}
		},

		Actions: func(env Env) ([]Action, error) {
			var actions []Action
			if !env.Assessment.State.Found() {
				actions = append(actions, Command{
					Name:   "npx",
					Args:   []string{"shadcn@latest", "init", "--yes"},
					Remedy: "npx shadcn@latest init",
				})
			}
			for _, c := range env.Answers.Values("components") {
				actions = append(actions, Command{
					Name:   "npx",
					Args:   []string{"shadcn@latest", "add", c, "--yes"},
					Remedy: "npx shadcn@latest add " + c,
				})
			}
			return actions, nil
		},

		Report: func(p *output.Printer, _ Env) {
			p.Hint("You can now use shadcn/ui components:")
			p.Code("import { Button } from \"@/components/ui/button\"\nimport { Input } from \"@/components/ui/input\"")
			p.Hint("To add more components later, run:")
			p.Code("npx shadcn@latest add [component-name]")
			p.Hint("Browse all components at: https://ui.shadcn.com/docs/components")
		},
	}
}
