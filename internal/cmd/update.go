package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/ui"
	"github.com/cameronsjo/stevedore/internal/update"
)

var updateCheckOnly bool

// updateCmd updates stevedore to the latest release.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update stevedore to the latest version",
	Long: `Check GitHub releases for a newer stevedore and replace the current
binary in place.

Examples:
  stevedore update          # Download and install the latest release
  stevedore update --check  # Only report whether an update exists`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Check for updates without installing")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ui.Info("Current version: %s (%s)", version, update.GetPlatformInfo())

	if updateCheckOnly {
		release, available, err := update.CheckForUpdate(version)
		if err != nil {
			return err
		}
		if !available {
			ui.Success("Already up to date")
			return nil
		}
		ui.Info("Update available: %s (published %s)", release.Version, release.PublishedAt)
		ui.Info("Release: %s", release.ReleaseURL)
		return nil
	}

	release, err := update.Update(version)
	if err != nil {
		return err
	}
	if release == nil {
		ui.Success("Already up to date")
		return nil
	}

	ui.Success("Updated to %s", release.Version)
	if release.Changelog != "" {
		ui.Info("%s", release.Changelog)
	}

	return nil
}
