package main

import (
	"github.com/spf13/cobra"

	"github.com/tracericochet/sampy/internal/templates"
)

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the templates tools write and where each comes from",
		Long: `List every template with its source.

Templates are resolved in order:
  1. .sampy/templates/ in the current project
  2. the directory named by templates_dir in config.yaml (or SAMPY_TEMPLATES_DIR)
  3. the templates built into sampy

Copy a built-in name into either directory to override it.

Examples:
  sampy templates`,
		Args: cobra.NoArgs,
		RunE: runTemplates,
	}
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	infos, err := a.engine.Templates.List()
	if err != nil {
		a.printer.Error(err)
		return err
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		source := string(info.Source)
		if info.Overrides {
			source += " (overrides built-in)"
		}
		rows = append(rows, []string{info.Name, source})
	}
	a.printer.Table([]string{"Template", "Source"}, rows)
	a.printer.Hint("Project overrides live in %s", templates.ProjectDir)
	return nil
}
