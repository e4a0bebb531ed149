package cmd

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/fileutil"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	initLanguage string
	initProvider string
	initRepoURL  string
	initCI       bool
	initForce    bool
)

// configScaffold is the starter config, templated so defaults derive
// from the project name. Sprig gives the scaffold its string helpers.
const configScaffold = `# stevedore run configuration for {{ .Name }}
label: {{ .Name | lower | replace " " "-" }}
defaultContainer: {{ .Name | lower | replace " " "-" }}:latest
repoUrl: {{ .RepoURL }}
language: {{ .Language }}
cloudProvider: {{ .Provider }}

# Optional overrides (defaults shown):
# appLabel: default-app
# containerName: main-container
# javaVersion: "17"
# nodeVersion: "16"
`

// ciScaffold is a GitHub Actions workflow that runs the pipeline on push.
const ciScaffold = `name: deploy-{{ .Name | lower | replace " " "-" }}
on:
  push:
    branches: [main]
jobs:
  deploy:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Run stevedore
        run: stevedore run -f stevedore.yaml
`

type scaffoldData struct {
	Name     string
	RepoURL  string
	Language string
	Provider string
}

// initCmd scaffolds a starter configuration.
var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Scaffold a starter stevedore.yaml",
	Long: `Write a starter stevedore.yaml for a new project, optionally with a
GitHub Actions workflow that runs the pipeline on push.

Examples:
  stevedore init my-service
  stevedore init my-service --language node --provider gcp
  stevedore init my-service --ci`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initLanguage, "language", config.LanguageJava, "Project language (java, node)")
	initCmd.Flags().StringVar(&initProvider, "provider", config.ProviderAWS, "Cloud provider (aws, azure, gcp)")
	initCmd.Flags().StringVar(&initRepoURL, "repo", "https://example.com/repo.git", "Source repository URL")
	initCmd.Flags().BoolVar(&initCI, "ci", false, "Also write a GitHub Actions workflow")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing stevedore.yaml")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	name := "my-service"
	if len(args) == 1 {
		name = args[0]
	}

	if _, err := os.Stat(config.DefaultConfigFile); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.DefaultConfigFile)
	}

	data := scaffoldData{
		Name:     name,
		RepoURL:  initRepoURL,
		Language: initLanguage,
		Provider: initProvider,
	}

	if err := writeScaffold(config.DefaultConfigFile, configScaffold, data); err != nil {
		return err
	}
	ui.Success("Wrote %s", config.DefaultConfigFile)

	// The scaffold must validate; a bad --language or --provider flag
	// surfaces here rather than at run time.
	cfg, err := config.Load(config.DefaultConfigFile)
	if err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}
	ui.Info("label=%s language=%s provider=%s", cfg.Label, cfg.Language, cfg.CloudProvider)

	if initCI {
		workflow := ".github/workflows/deploy.yaml"
		if err := writeScaffold(workflow, ciScaffold, data); err != nil {
			return err
		}
		ui.Success("Wrote %s", workflow)
	}

	return nil
}

func writeScaffold(path, text string, data scaffoldData) error {
	tmpl, err := template.New(path).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse scaffold %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render scaffold %s: %w", path, err)
	}

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write scaffold %s: %w", path, err)
	}
	return nil
}
