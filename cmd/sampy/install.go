package main

import (
	"github.com/spf13/cobra"

	"github.com/tracericochet/sampy/internal/batch"
	"github.com/tracericochet/sampy/internal/output"
)

const banner = `
███████  █████  ███    ███ ██████  ██    ██
██      ██   ██ ████  ████ ██   ██  ██  ██
███████ ███████ ██ ████ ██ ██████    ████
     ██ ██   ██ ██  ██  ██ ██         ██
███████ ██   ██ ██      ██ ██         ██
`

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Interactive installer for all sampy tools",
		Long: `Pick several tools from a menu and configure them in one pass.

The menu depends on the detected framework (Next.js, Vite + React or React).
Every selected tool runs with its default answers; a tool that fails is
reported and the rest still run.

Examples:
  sampy install`,
		Args: cobra.NoArgs,
		RunE: runInstall,
	}
}

func runInstall(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	printBanner(a.printer)

	b := &batch.Batch{
		Dir:      a.dir,
		Out:      a.printer,
		Asker:    a.asker,
		Tools:    a.engine,
		Settings: a.settings,
	}
	if _, err := b.Run(cmd.Context()); err != nil {
		a.printer.Error(err)
		return err
	}
	return nil
}

func printBanner(p *output.Printer) {
	styles := p.Styles()
	p.Println(styles.Code.Render(banner))
	p.Println(styles.Code.Render("Sampy: Projects setup in a breeze"))
	p.Println()
}
