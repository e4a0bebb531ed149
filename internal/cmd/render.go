package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/fileutil"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	renderConfigFile string
	renderOutput     string
)

// renderCmd renders the provider pod template without running anything.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the pod template for a config",
	Long: `Render the provider's pod template against a run configuration.

Rendering is deterministic: the same config always yields byte-identical
output, so the result is safe to commit or diff. No pipeline stage runs.

Examples:
  stevedore render                     # Print manifest for ./stevedore.yaml
  stevedore render -o pod.yaml         # Write to a file
  stevedore render -f deploy/app.yaml`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderConfigFile, "file", "f", config.DefaultConfigFile, "Run configuration file")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write the manifest to a file instead of stdout")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(renderConfigFile)
	if err != nil {
		return err
	}

	tmpl, err := manifest.DefaultStore().Resolve(cfg.CloudProvider)
	if err != nil {
		return err
	}

	rendered, err := manifest.Render(tmpl, manifest.Bind(cfg))
	if err != nil {
		return err
	}

	if renderOutput == "" {
		fmt.Print(rendered)
		return nil
	}

	if err := fileutil.WriteFileAtomic(renderOutput, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	ui.Cargo("Manifest written to %s", renderOutput)

	return nil
}
