// Package pipeline sequences the three deployment stages — checkout,
// build, deploy — as a fail-fast state machine around external
// collaborators. Each run is isolated: the only shared state between
// concurrent runs is the read-only provider registry and template store.
package pipeline

import (
	"context"
	"time"

	"github.com/cameronsjo/stevedore/internal/build"
	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/provider"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// Pipeline runs the Checkout -> Build -> Deploy sequence for one
// configuration at a time. Collaborators are injected so tests can
// substitute fakes; production wiring happens in the CLI.
type Pipeline struct {
	fetch   Fetcher
	build   Builder
	deploy  Deployer
	execCtx *provider.ExecContext
}

// Option is a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithExecContext sets the execution context passed to the deployer.
func WithExecContext(execCtx *provider.ExecContext) Option {
	return func(p *Pipeline) {
		p.execCtx = execCtx
	}
}

// New creates a Pipeline over the given collaborators.
func New(fetch Fetcher, builder Builder, deploy Deployer, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetch:   fetch,
		build:   builder,
		deploy:  deploy,
		execCtx: &provider.ExecContext{Runner: &provider.ExecRunner{}},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run executes the full stage sequence for the configuration and returns
// the terminal run state. The first failure short-circuits the run; no
// later stage executes and nothing is retried or rolled back here.
func (p *Pipeline) Run(ctx context.Context, cfg *config.RunConfig) *Run {
	run := newRun(cfg)

	ui.Header("=== Run %s: %s (%s -> %s) ===", run.ShortID(), cfg.Label, cfg.Language, cfg.CloudProvider)

	// Both lookup tables are checked up front, so a configuration-shape
	// error fails the run before any collaborator is invoked.
	if !p.build.Supports(cfg.Language) {
		return p.fail(run, StageBuild, &build.UnsupportedLanguageError{Language: cfg.Language})
	}
	if !p.deploy.Supports(cfg.CloudProvider) {
		return p.fail(run, StageDeploy, &provider.UnsupportedProviderError{Provider: cfg.CloudProvider})
	}

	stages := []struct {
		stage Stage
		fn    func(context.Context) error
	}{
		{StageCheckout, func(ctx context.Context) error { return p.fetch.Fetch(ctx, cfg.RepoURL) }},
		{StageBuild, func(ctx context.Context) error { return p.build.Build(ctx, cfg.Language) }},
		{StageDeploy, func(ctx context.Context) error { return p.deploy.Deploy(ctx, cfg, p.execCtx) }},
	}

	for _, s := range stages {
		// Aborts take effect only at stage boundaries: a stage that has
		// started runs to completion, so collaborators never see a
		// mid-flight cancellation.
		if err := ctx.Err(); err != nil {
			return p.fail(run, s.stage, err)
		}

		run.Stage = s.stage
		ui.Stage(string(s.stage), "starting")

		if err := s.fn(context.WithoutCancel(ctx)); err != nil {
			return p.fail(run, s.stage, err)
		}

		ui.Stage(string(s.stage), "done")
	}

	run.Stage = StageSucceeded
	run.Finished = time.Now()
	ui.Success("Run %s succeeded in %s", run.ShortID(), run.Duration().Round(time.Millisecond))

	return run
}

// fail moves the run to the Failed state with a stage-tagged error.
func (p *Pipeline) fail(run *Run, stage Stage, err error) *Run {
	run.Stage = StageFailed
	run.Err = &StageError{Stage: stage, Kind: classify(stage, err), Err: err}
	run.Finished = time.Now()

	ui.Error("Run %s failed: %v", run.ShortID(), run.Err)

	return run
}
