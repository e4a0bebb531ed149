package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/preflight"
	"github.com/cameronsjo/stevedore/internal/runtime"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// doctorCmd checks the local environment.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check required binaries and the Docker daemon",
	Long: `Check that the binaries stevedore shells out to are installed and
that the Docker daemon is reachable for --provision runs.

Missing optional binaries are warnings; missing required binaries fail
the check.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	missing := preflight.CheckBinaries()

	if len(missing) == 0 {
		ui.Success("All binaries present")
	}
	for _, bin := range missing {
		if bin.Required {
			ui.Error("missing %q — %s", bin.Name, bin.InstallHint)
		} else {
			ui.Warning("missing %q (optional) — %s", bin.Name, bin.InstallHint)
		}
	}

	checkDockerDaemon(cmd.Context())

	if !preflight.HasRequired(missing) {
		return fmt.Errorf("required binaries missing")
	}
	return nil
}

func checkDockerDaemon(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	prov, err := runtime.NewProvisioner()
	if err != nil {
		ui.Warning("Docker client unavailable: %v", err)
		return
	}
	defer prov.Close()

	if err := prov.Ping(ctx); err != nil {
		ui.Warning("Docker daemon unreachable (needed for --provision): %v", err)
		return
	}
	ui.Success("Docker daemon reachable")
}
