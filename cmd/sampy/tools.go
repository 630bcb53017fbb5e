package main

import (
	"github.com/spf13/cobra"

	"github.com/tracericochet/sampy/internal/tool"
)

// newToolCmd creates the command for one tool descriptor.
func newToolCmd(d tool.Descriptor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(d.Key),
		Short: d.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTool(cmd, d.Key)
		},
	}
	for alias, key := range tool.Aliases {
		if key == d.Key {
			cmd.Aliases = append(cmd.Aliases, alias)
		}
	}
	return cmd
}

// runTool runs one tool. Tool failures are reported by the engine and do
// not change the exit status.
func runTool(cmd *cobra.Command, key tool.Key) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	rc, err := a.runContext()
	if err != nil {
		a.printer.Error(err)
		return err
	}
	a.engine.Run(cmd.Context(), rc, key)
	return nil
}
