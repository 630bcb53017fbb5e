// Package main provides the entry point for the sampy CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/telemetry"
	"github.com/tracericochet/sampy/internal/tool"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const repositoryURL = "https://github.com/TraceRicochet/sampy"

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run(os.Args[1:], os.Stdout)
	os.Exit(code)
}

func run(args []string, stdout io.Writer) int {
	if shortVersion(args) {
		_, _ = fmt.Fprintln(stdout, version)
		return output.ExitSuccess
	}

	shutdown := telemetry.Init(version)
	defer func() { _ = shutdown(context.Background()) }()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// shortVersion reports whether -v or -V appears anywhere before "--". Either
// prints the bare version and nothing else runs.
func shortVersion(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-v", "-V":
			return true
		}
	}
	return false
}

// newRootCmd creates the root command for the sampy CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sampy",
		Short: "Projects setup in a breeze",
		Long: `Sampy - Projects setup in a breeze.

Sampy configures frontend tooling for an existing React, Vite or Next.js
project in the current directory. Each command checks what is already set
up, asks before changing anything, installs packages with pnpm and writes
the configuration files.

Run "sampy install" to pick several tools at once.

Set SAMPY_AUTO_CONFIRM=1 to accept every default without prompting.

Documentation: ` + repositoryURL + `#readme
Repository:    ` + repositoryURL,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			notifyUpdate(cmd)
		},
	}

	cmd.PersistentFlags().String("color", "auto", "When to use colors: auto, always or never")
	cmd.PersistentFlags().Bool("verbose", false, "Show debug output")
	cmd.Flags().BoolP("version", "V", false, "Print the version")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: tool.GroupSetup, Title: "Setup Commands:"})
	cmd.AddGroup(&cobra.Group{ID: tool.GroupCleanup, Title: "Cleanup Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "project", Title: "Project Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	for _, key := range tool.Keys() {
		d, _ := tool.Lookup(key)
		addGroupedCommand(cmd, newToolCmd(d), d.Group)
	}

	addGroupedCommand(cmd, newInstallCmd(), "project")
	addGroupedCommand(cmd, newStatusCmd(), "project")

	addGroupedCommand(cmd, newTemplatesCmd(), "admin")
	addGroupedCommand(cmd, newUpdateCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
