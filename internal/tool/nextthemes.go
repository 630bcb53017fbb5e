package tool

import (
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/pkgmgr"
	"github.com/tracericochet/sampy/internal/project"
)

const (
	themeProviderFile = "components/theme-provider.tsx"
	themeToggleFile   = "components/theme-toggle.tsx"
)

func nextThemes() Descriptor {
	pkgs := []string{"next-themes", "tw-animate-css"}
	return Descriptor{
		Key:         NextThemes,
		Description: "Configure next-themes with a shadcn/ui theme toggle for a Next.js project",
		Label:       "next-themes",
		Group:       GroupSetup,
		Packages:    pkgs,
		Framework:   project.FrameworkNext,

		Assess: func(dir string) (Assessment, error) {
			state, err := project.Probe(dir, project.Query{
				Candidates: candidates("", themeProviderFile),
				Deps:       pkgs,
			})
			if err != nil {
				return Assessment{}, err
			}
			facts := Facts{
				"provider": state.ConfigPath,
				"toggle":   project.Find(dir, themeToggleFile),
				"shadcn":   project.Find(dir, shadcnConfigFile),
				"button":   project.Find(dir, "components/ui/button.tsx"),
				"dropdown": project.Find(dir, "components/ui/dropdown-menu.tsx"),
			}
			lvl := level(state.Has("next-themes"), facts.Has("provider"), facts.Has("toggle"))
			return assess(state, facts, lvl, [3]string{
				"Do you want to install shadcn/ui and next-themes?",
				"next-themes is partially set up. Do you want to complete the setup?",
				"next-themes and the theme toggle appear to be configured. Do you want to set them up again?",
			}), nil
		},

		Install: func(env Env) []string {
			return missing(env.Assessment.State.Manifest, pkgs)
		},

		Actions: func(env Env) ([]Action, error) {
			facts := env.Assessment.Facts
			var actions []Action
			shadcnStep := func(fact string, args ...string) {
				if facts.Has(fact) {
					return
				}
				args = append([]string{"dlx", "shadcn@latest"}, args...)
				actions = append(actions, Command{
					Name:   pkgmgr.Binary,
					Args:   args,
					Remedy: pkgmgr.CommandLine(pkgmgr.Binary, args...),
				})
			}
			shadcnStep("shadcn", "init")
			shadcnStep("button", "add", "button")
			shadcnStep("dropdown", "add", "dropdown-menu")

			for _, f := range []struct{ template, target string }{
				{"next-themes/theme-provider.tsx", themeProviderFile},
				{"next-themes/theme-toggle.tsx", themeToggleFile},
			} {
				tmpl, err := env.Templates.Load(f.template)
				if err != nil {
					return nil, output.NewSystemErrorWithCause("could not find theme component template", err)
				}
				actions = append(actions, literal(f.target, tmpl.Content))
			}
			return actions, nil
		},

		Report: func(p *output.Printer, _ Env) {
			p.Section("Next steps")
			p.Hint("1. Add suppressHydrationWarning to the <html> tag in your root layout.tsx:")
			p.Code(`<html lang="en" suppressHydrationWarning>`)
			p.Hint("2. Wrap {children} in the ThemeProvider inside <body>:")
			p.Code(`<ThemeProvider
  attribute="class"
  defaultTheme="system"
  enableSystem
  disableTransitionOnChange
>
  {children}
</ThemeProvider>`)
			p.Hint("3. Use the ModeToggle component in your navbar or header:")
			p.Code(`import { ModeToggle } from "@/components/theme-toggle";

export function Header() {
  return (
    <header>
      <ModeToggle />
    </header>
  );
}`)
		},
	}
}
