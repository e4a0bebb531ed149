package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/build"
	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/provider"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var validateConfigFile string

// validateCmd checks a config without side effects.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config without side effects",
	Long: `Validate a run configuration: field shape, provider and language
support, and that the provider's template renders with no unbound
variables. Nothing is fetched, built, or deployed.

Examples:
  stevedore validate
  stevedore validate -f deploy/app.yaml`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "file", "f", config.DefaultConfigFile, "Run configuration file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(validateConfigFile)
	if err != nil {
		return err
	}
	ui.Success("Config shape OK: %s", validateConfigFile)

	store := manifest.DefaultStore()
	registry := provider.Default()

	if problems := registry.CheckConsistency(store); len(problems) > 0 {
		for _, problem := range problems {
			ui.Error("%v", problem)
		}
		return fmt.Errorf("%d provider registration problem(s)", len(problems))
	}

	if !build.Default().Supports(cfg.Language) {
		return &build.UnsupportedLanguageError{Language: cfg.Language}
	}
	ui.Success("Language %q supported", cfg.Language)

	if !registry.Supports(cfg.CloudProvider) {
		return &provider.UnsupportedProviderError{Provider: cfg.CloudProvider}
	}
	ui.Success("Provider %q supported", cfg.CloudProvider)

	tmpl, err := store.Resolve(cfg.CloudProvider)
	if err != nil {
		return err
	}
	if _, err := manifest.Render(tmpl, manifest.Bind(cfg)); err != nil {
		return err
	}
	ui.Success("Template renders cleanly")

	return nil
}
