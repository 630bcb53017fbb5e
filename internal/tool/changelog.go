package tool

import (
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/prompt"
)

const (
	changelogConfigFile = ".changelogrc"
	changelogFile       = "CHANGELOG.md"
	changelogFallback   = "# Changelog\n\nAll notable changes to this project will be documented in this file.\n"
)

func changelog() Descriptor {
	pkgs := []string{"changelogen"}
	return Descriptor{
		Key:         Changelog,
		Description: "Configure changelogen for automatic changelog generation",
		Label:       "changelogen",
		Group:       GroupSetup,
		Packages:    pkgs,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("", changelogConfigFile),
				Deps:       pkgs,
			})
			if err != nil {
				return Assessment{}, err
			}
			facts := Facts{"config": state.ConfigPath, "changelog": project.Find(dir, changelogFile)}
			lvl := level(state.Has("changelogen"), state.Found(), state.Manifest.HasScript("changelog"))
			return assess(state, facts, lvl, [3]string{
				"Do you want to set up changelogen for automatic changelog generation?",
				"changelogen is partially configured. Do you want to complete the setup?",
				"changelogen appears to be configured. Do you want to reconfigure it?",
			}), nil
		},

		Questions: func(a Assessment) []prompt.Question {
			if a.Facts.Has("changelog") {
				return nil
			}
			return []prompt.Question{{
				Kind:    prompt.Confirm,
				Name:    "changelog",
				Message: "Do you want to create an initial CHANGELOG.md file?",
				Default: true,
			}}
		},

		Install: func(env Env) []string {
			return missing(env.Assessment.State.Manifest, pkgs)
		},

		Actions: func(env Env) ([]Action, error) {
			cfg, err := env.Templates.Load("changelog/" + changelogConfigFile)
			if err != nil {
				return nil, output.NewSystemErrorWithCause("could not find changelogen template", err)
			}
			actions := []Action{literal(changelogConfigFile, cfg.Content)}
			// An existing changelog is never overwritten.
			if !env.Assessment.Facts.Has("changelog") && env.Answers.Bool("changelog") {
				actions = append(actions, literal(changelogFile, env.Templates.Read("changelog/"+changelogFile, changelogFallback)))
			}
			return append(actions, scripts("changelog", "npx changelogen@latest --release")), nil
		},

		Report: func(p *output.Printer, _ Env) {
			p.Hint("Generate a changelog and release with:")
			p.Code("pnpm changelog")
			p.Hint("This updates CHANGELOG.md from your conventional commits, bumps the version, then commits and tags the release.")
		},
	}
}
