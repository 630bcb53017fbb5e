package tool

import (
	"fmt"
	"path"

	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
)

const counterStoreFallback = `import { create } from 'zustand';

interface CounterState {
  count: number;
  increment: () => void;
  decrement: () => void;
  reset: () => void;
}

export const useCounterStore = create<CounterState>((set) => ({
  count: 0,
  increment: () => set((state) => ({ count: state.count + 1 })),
  decrement: () => set((state) => ({ count: state.count - 1 })),
  reset: () => set({ count: 0 }),
}));
`

var storeLocations = []prompt.Choice{
	{Label: "src/store/", Value: "src/store", Checked: true},
	{Label: "src/stores/", Value: "src/stores"},
	{Label: "src/lib/", Value: "src/lib"},
}

func zustand() Descriptor {
	pkgs := []string{"zustand"}
	return Descriptor{
		Key:         Zustand,
		Description: "Set up Zustand state management with example store",
		Label:       "Zustand",
		Group:       GroupSetup,
		Packages:    pkgs,
		Runtime:     true,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("", storePaths()...),
				Deps:       pkgs,
			})
			if err != nil {
				return Assessment{}, err
			}
			lvl := level(state.Has("zustand"), state.Found())
			return assess(state, Facts{"store": state.ConfigPath}, lvl, [3]string{
				"Do you want to install Zustand?",
				"Zustand is partially set up. Do you want to complete the setup?",
				"Zustand is already installed with an example store. Do you want to set it up again?",
			}), nil
		},

		Questions: func(Assessment) []prompt.Question {
			return []prompt.Question{
				{
					Kind:    prompt.Confirm,
					Name:    "example",
					Message: "Do you want to create an example store?",
					Default: true,
				},
				{
					Kind:    prompt.Select,
					Name:    "location",
					Message: "Where would you like to create the store?",
					Choices: storeLocations,
					When:    func(a prompt.Answers) bool { return a.Bool("example") },
				},
			}
		},

		Install: func(env Env) []string {
			return missing(env.Assessment.State.Manifest, pkgs)
		},

		Actions: func(env Env) ([]Action, error) {
			if !env.Answers.Bool("example") {
				return nil, nil
			}
			loc := env.Answers.Value("location")
			example, err := env.Templates.Load("zustand/CounterExample.tsx")
			if err != nil {
				return nil, output.NewSystemErrorWithCause("Zustand example template not found", err)
			}
			return []Action{
				literal(path.Join(loc, "useCounterStore.ts"), env.Templates.Read("zustand/useCounterStore.ts", counterStoreFallback)),
				literal(path.Join(loc, "CounterExample.tsx"), example.Content),
			}, nil
		},

		Report: func(p *output.Printer, env Env) {
			loc := env.Answers.Value("location")
			if loc == "" {
				return
			}
			p.Hint("Import the store:")
			p.Code(fmt.Sprintf("import { useCounterStore } from './%s/useCounterStore';", loc))
			p.Hint("Use it in a component:")
			p.Code("const { count, increment } = useCounterStore();")
			p.Hint("See the example component in %s/CounterExample.tsx", loc)
		},
	}
}

// storePaths lists every location an example store may have been written to.
func storePaths() []string {
	out := make([]string, 0, len(storeLocations))
	for _, c := range storeLocations {
		out = append(out, path.Join(c.Value, "useCounterStore.ts"))
	}
	return out
}
