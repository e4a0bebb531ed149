package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/snapshot"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	snapshotsConfigFile string
	snapshotsPrune      bool
)

// snapshotsCmd lists or prunes archived manifests.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List or prune archived manifests",
	Long: `List the manifests archived by --snapshot runs, newest first, or
remove them all with --prune. At most ` + fmt.Sprint(snapshot.MaxSnapshots) + ` snapshots are retained;
older ones are removed automatically after each run.`,
	RunE: runSnapshots,
}

func init() {
	snapshotsCmd.Flags().StringVarP(&snapshotsConfigFile, "file", "f", config.DefaultConfigFile, "Run configuration file (locates the project)")
	snapshotsCmd.Flags().BoolVar(&snapshotsPrune, "prune", false, "Remove all snapshots")

	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	projectDir := filepath.Dir(snapshotsConfigFile)

	if snapshotsPrune {
		removed, err := snapshot.Prune(projectDir)
		if err != nil {
			return err
		}
		ui.Success("Removed %d snapshot(s)", removed)
		return nil
	}

	snapshots, err := snapshot.List(projectDir)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		ui.Info("No snapshots")
		return nil
	}

	for _, snap := range snapshots {
		fmt.Printf("%s  run=%s  %s\n", snap.Name, snap.RunID, snap.Created.Format("2006-01-02 15:04:05"))
	}

	return nil
}
