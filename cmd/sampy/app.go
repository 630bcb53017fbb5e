package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tracericochet/sampy/internal/config"
	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/pkgmgr"
	"github.com/tracericochet/sampy/internal/prompt"
	"github.com/tracericochet/sampy/internal/templates"
	"github.com/tracericochet/sampy/internal/tool"
	"github.com/tracericochet/sampy/internal/update"
)

// app is everything a command needs, resolved once from flags, settings
// and the environment.
type app struct {
	dir      string
	printer  *output.Printer
	settings config.Settings
	asker    prompt.Asker
	engine   *tool.Engine
}

// newApp builds the app for cmd rooted at the current directory.
func newApp(cmd *cobra.Command) (*app, error) {
	printer, err := newPrinter(cmd)
	if err != nil {
		return nil, err
	}
	settings, err := config.Load()
	if err != nil {
		printer.Error(err)
		return nil, err
	}
	dir, err := os.Getwd()
	if err != nil {
		err = output.NewSystemErrorWithCause("failed to resolve current directory", err)
		printer.Error(err)
		return nil, err
	}

	asker := prompt.Terminal{
		Input:      cmd.InOrStdin(),
		Output:     cmd.ErrOrStderr(),
		Accessible: !isTerminal(cmd.InOrStdin()),
	}
	return &app{
		dir:      dir,
		printer:  printer,
		settings: settings,
		asker:    asker,
		engine: &tool.Engine{
			Dir:       dir,
			Out:       printer,
			Asker:     asker,
			Installer: pkgmgr.New(dir),
			Templates: templates.New(dir, settings.TemplatesDir),
		},
	}, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && output.IsTTY(f)
}

// newPrinter resolves --color and --verbose into a Printer on cmd's output.
func newPrinter(cmd *cobra.Command) (*output.Printer, error) {
	mode, err := output.ParseColorMode(flagString(cmd, "color"))
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	printer := output.NewPrinter(out, output.ResolveColorMode(mode, output.IsTTY(out))).
		WithStderr(cmd.ErrOrStderr()).
		WithVerbose(flagString(cmd, "verbose") == "true")
	return printer, nil
}

// runContext reads SAMPY_AUTO_CONFIRM once for a single-tool run.
func (a *app) runContext() (tool.RunContext, error) {
	auto, _, err := config.EnvBool("SAMPY_AUTO_CONFIRM")
	if err != nil {
		return tool.RunContext{}, err
	}
	return tool.RunContext{AutoConfirm: auto, FrameworkCheck: a.settings.FrameworkCheck}, nil
}

// flagString reads a flag from cmd or any parent.
func flagString(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// notifyUpdate prints a release notice after a command. It never fails.
func notifyUpdate(cmd *cobra.Command) {
	if cmd.Name() == "update" {
		return
	}
	settings, err := config.Load()
	if err != nil || !settings.UpdateCheck {
		return
	}

	checker := &update.Checker{Source: update.GitHub{}}
	if dir := config.Dir(); dir != "" {
		checker.CacheFile = filepath.Join(dir, "update-check.yaml")
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
	defer cancel()

	notice, ok := checker.Check(ctx, version)
	if !ok {
		return
	}
	printer, err := newPrinter(cmd)
	if err != nil {
		return
	}
	printer.Println()
	printer.Box("Update available", fmt.Sprintf("%s\nRun `sampy update` or download it from %s/releases", notice, repositoryURL))
}
