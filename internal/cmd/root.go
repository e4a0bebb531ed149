// Package cmd provides the CLI commands for stevedore.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stevedore",
	Short: "Multi-cloud deployment orchestration",
	Long: `stevedore - multi-cloud deployment orchestration

Renders provider-specific execution-environment manifests from a single
run configuration and drives a fixed checkout -> build -> deploy pipeline
against the configured cloud.

PIPELINE
  run                   Run the full pipeline for a config
    --dry-run, -n       Render and show the plan without executing
    --provision         Provision the execution environment via Docker
    --snapshot          Archive the rendered manifest
    --secrets <file>    Inject credentials from a SOPS file

MANIFESTS
  render                Render the pod template for a config
    --output, -o <file> Write the manifest instead of printing
  providers             List providers, templates, and strategies
  validate              Validate a config without side effects

SETUP
  init [name]           Scaffold a starter stevedore.yaml
  doctor                Check required binaries and the Docker daemon

HOUSEKEEPING
  snapshots             List or prune archived manifests
  update                Update stevedore to the latest version`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
