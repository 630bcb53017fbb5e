package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tracericochet/sampy/internal/output"
	"github.com/tracericochet/sampy/internal/update"
)

func newUpdateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Self-update sampy to the latest release",
		Long: `Self-update sampy to the latest GitHub release.

Downloads the latest release, verifies the checksum, and replaces
the current binary. Use --check to only check for updates without
installing.`,
		Example: `  # Check for updates
  sampy update --check

  # Update to the latest version
  sampy update`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}

			res, err := update.SelfUpdate(cmd.Context(), version, checkOnly)
			if errors.Is(err, update.ErrDevBuild) {
				printer.Info("Development build (version %q), cannot compare versions.", version)
				printer.Info("Latest release: v%s", res.Latest)
				return nil
			}
			if err != nil {
				err = output.NewSystemErrorWithCause("update failed", err)
				printer.Error(err)
				return err
			}

			switch {
			case res.Updated:
				printer.Success("Updated to v%s", res.Latest)
			case res.Available:
				printer.Info("Update available: v%s → v%s", res.Current, res.Latest)
			default:
				printer.Info("Already up to date (v%s).", res.Current)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Check for updates without installing")

	return cmd
}
