package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/build"
	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/gitops"
	"github.com/cameronsjo/stevedore/internal/lock"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/notify"
	"github.com/cameronsjo/stevedore/internal/pipeline"
	"github.com/cameronsjo/stevedore/internal/preflight"
	"github.com/cameronsjo/stevedore/internal/provider"
	"github.com/cameronsjo/stevedore/internal/runtime"
	"github.com/cameronsjo/stevedore/internal/secrets"
	"github.com/cameronsjo/stevedore/internal/snapshot"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	runConfigFile string
	runSecretsF   string
	runDryRun     bool
	runProvision  bool
	runSnapshot   bool
)

// runCmd executes the full pipeline for a configuration.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the checkout -> build -> deploy pipeline",
	Long: `Run the full deployment pipeline for a configuration.

The run renders the provider's pod template, then drives the three
pipeline stages in order, stopping at the first failure. Interrupts
(Ctrl-C) abort between stages; a running stage always completes.

Examples:
  stevedore run                       # Use ./stevedore.yaml
  stevedore run -f deploy/app.yaml    # Explicit config
  stevedore run -n                    # Dry run: show manifest and plan
  stevedore run --secrets creds.sops.yaml`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigFile, "file", "f", config.DefaultConfigFile, "Run configuration file")
	runCmd.Flags().StringVar(&runSecretsF, "secrets", "", "SOPS file with provider credentials")
	runCmd.Flags().BoolVarP(&runDryRun, "dry-run", "n", false, "Render and show the plan without executing")
	runCmd.Flags().BoolVar(&runProvision, "provision", false, "Provision the execution environment via Docker")
	runCmd.Flags().BoolVar(&runSnapshot, "snapshot", false, "Archive the rendered manifest")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(runConfigFile)
	if err != nil {
		return err
	}

	projectDir := filepath.Dir(runConfigFile)

	store := manifest.DefaultStore()
	registry := provider.Default()

	for _, problem := range registry.CheckConsistency(store) {
		ui.Warning("registration: %v", problem)
	}

	// Render first: the manifest provisions the execution environment
	// and must exist before any stage runs.
	tmpl, err := store.Resolve(cfg.CloudProvider)
	if err != nil {
		return err
	}
	rendered, err := manifest.Render(tmpl, manifest.Bind(cfg))
	if err != nil {
		return err
	}

	if runDryRun {
		return showPlan(cfg, rendered)
	}

	if missing := preflight.CheckForRun(cfg.Language, cfg.CloudProvider); len(missing) > 0 {
		for _, bin := range missing {
			ui.Warning("missing binary %q (%s)", bin.Name, bin.InstallHint)
		}
	}

	return lock.WithLock(projectDir, "run", func() error {
		return executeRun(ctx, cfg, projectDir, rendered, registry)
	})
}

func executeRun(ctx context.Context, cfg *config.RunConfig, projectDir, rendered string, registry *provider.Registry) error {
	execCtx := &provider.ExecContext{Runner: &provider.ExecRunner{}}
	if runSecretsF != "" {
		env, err := secrets.NewSOPSOps().CredentialEnv(ctx, runSecretsF)
		if err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}
		execCtx.Env = env
		ui.Success("Credentials loaded from %s", runSecretsF)
	}

	if runProvision {
		if err := provisionEnvironment(ctx, rendered); err != nil {
			return err
		}
	}

	workDir := filepath.Join(projectDir, ".stevedore", "workspace", cfg.Label)

	p := pipeline.New(
		gitops.NewFetcher(workDir),
		build.NewBuilder(workDir),
		pipeline.NewRegistryDeployer(registry),
		pipeline.WithExecContext(execCtx),
	)

	run := p.Run(ctx, cfg)

	if runSnapshot {
		name, err := snapshot.Create(projectDir, run.ID, rendered)
		if err != nil {
			ui.Warning("snapshot failed: %v", err)
		} else {
			ui.Cargo("Manifest archived: %s", name)
		}
	}

	sendNotification(run)

	if !run.Succeeded() {
		return run.Err
	}
	return nil
}

func provisionEnvironment(ctx context.Context, rendered string) error {
	prov, err := runtime.NewProvisioner()
	if err != nil {
		return err
	}
	defer prov.Close()

	id, err := prov.Provision(ctx, rendered)
	if err != nil {
		return fmt.Errorf("provision environment: %w", err)
	}

	ui.Crane("Execution environment ready: %.12s", id)
	return nil
}

func sendNotification(run *pipeline.Run) {
	manager := notify.NewManager()
	manager.Add(notify.NewWebhookNotifier(""))
	if !manager.HasNotifiers() {
		return
	}

	event := &notify.Event{
		RunID:    run.ID,
		Label:    run.Config.Label,
		Provider: run.Config.CloudProvider,
		Status:   notify.StatusSucceeded,
		Duration: run.Duration(),
	}
	if !run.Succeeded() {
		event.Status = notify.StatusFailed
		var stageErr *pipeline.StageError
		if errors.As(run.Err, &stageErr) {
			event.Stage = string(stageErr.Stage)
			event.Error = stageErr.Err.Error()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := manager.Send(ctx, event); err != nil {
		ui.Warning("notification failed: %v", err)
	}
}

func showPlan(cfg *config.RunConfig, rendered string) error {
	ui.Header("Rendered manifest (%s)", cfg.CloudProvider)
	fmt.Println(rendered)

	steps, err := build.Default().Resolve(cfg.Language)
	if err != nil {
		return err
	}
	if _, err := provider.Default().Resolve(cfg.CloudProvider); err != nil {
		return err
	}

	ui.Header("Plan")
	ui.Stage("Checkout", "fetch %s", cfg.RepoURL)
	for _, step := range steps {
		ui.Stage("Build", "%s", step.String())
	}
	ui.Stage("Deploy", "dispatch %q strategy", cfg.CloudProvider)

	return nil
}
