package tool

import (
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/pkgmgr"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/writer"
)

const (
	commitlintConfigFile = ".commitlintrc.ts"
	commitMsgHook        = ".husky/commit-msg"
	commitMsgFallback    = "pnpm commitlint --edit \"$1\"\n"
)

var commitlintConfigs = []string{
	".commitlintrc.ts", ".commitlintrc.js", ".commitlintrc.json", ".commitlintrc",
	"commitlint.config.js", "commitlint.config.ts", "commitlint.config.mjs",
}

func commitlint() Descriptor {
	pkgs := []string{"@commitlint/cli", "@commitlint/config-conventional", "@commitlint/types", "husky"}
	return Descriptor{
		Key:         Commitlint,
		Description: "Configure commitlint and husky to enforce conventional commits",
		Label:       "commitlint",
		Group:       GroupSetup,
		Packages:    pkgs,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("", commitlintConfigs...),
				Deps:       []string{"@commitlint/cli", "husky"},
			})
			if err != nil {
				return Assessment{}, err
			}
			hook := project.Find(dir, commitMsgHook)
			lvl := level(state.Has("@commitlint/cli"), state.Has("husky"), state.Found(), hook != "")
			return assess(state, Facts{"config": state.ConfigPath, "hook": hook}, lvl, [3]string{
				"Do you want to install commitlint and husky to enforce conventional commits?",
				"commitlint and husky are partially set up. Do you want to complete the setup?",
				"commitlint and husky appear to be configured. Do you want to reconfigure them?",
			}), nil
		},

		Install: func(env Env) []string {
			return missing(env.Assessment.State.Manifest, pkgs)
		},

		Actions: func(env Env) ([]Action, error) {
			cfg, err := env.Templates.Load("commitlint/" + commitlintConfigFile)
			if err != nil {
				return nil, output.NewSystemErrorWithCause("could not find commitlint template", err)
			}
			return []Action{
				literal(commitlintConfigFile, cfg.Content),
				Command{
					Name:   pkgmgr.Binary,
					Args:   []string{"husky", "init"},
					Remedy: "pnpm husky init",
				},
				// husky init generates a pre-commit hook running the test script.
				remove(".husky/pre-commit"),
				Write{writer.Mutation{
					Path:    commitMsgHook,
					Mode:    writer.Literal,
					Content: env.Templates.Read("commitlint/commit-msg", commitMsgFallback),
					Perm:    0o755,
				}},
				scripts("prepare", "husky"),
			}, nil
		},

		Report: func(p *output.Printer, _ Env) {
			p.Hint("Commits are now validated against the conventional commit format. For example:")
			p.Code("feat: add new feature\nfix: resolve issue with login\ndocs: update README\nstyle: format code\nrefactor: simplify authentication logic")
		},
	}
}
