package main

import (
	"github.com/spf13/cobra"

	"github.com/tracericochet/sampy/internal/batch"
	"github.com/tracericochet/sampy/internal/project"
	"github.com/tracericochet/sampy/internal/tool"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tools are already configured",
		Long: `Show how far each tool is configured in the current project.

Nothing is installed or written. Tools are those offered by "sampy install"
for the detected framework.

Examples:
  sampy status`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	printer := a.printer

	framework, err := project.DetectFramework(a.dir)
	if err != nil {
		printer.Error(err)
		return err
	}
	if _, err := project.ReadManifest(a.dir); err != nil {
		printer.Error(err)
		return err
	}

	printer.Section("Project")
	printer.Info("Framework: %s", framework.Label())

	keys := tool.Keys()
	if framework != project.FrameworkUnknown {
		keys = nil
		for _, c := range batch.Choices(framework) {
			keys = append(keys, tool.Key(c.Value))
		}
	}

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		d, _ := tool.Lookup(key)
		level := "unavailable"
		if asmt, err := a.engine.Assess(key); err == nil {
			level = asmt.Level.String()
		} else {
			printer.Debug("%s: %v", key, err)
		}
		rows = append(rows, []string{string(key), d.Label, level})
	}

	printer.Section("Tools")
	printer.Table([]string{"Tool", "Name", "Status"}, rows)
	return nil
}
