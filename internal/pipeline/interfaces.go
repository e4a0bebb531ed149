package pipeline

import (
	"context"

	"github.com/cameronsjo/stevedore/internal/build"
	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/gitops"
	"github.com/cameronsjo/stevedore/internal/provider"
)

// Fetcher is the checkout collaborator.
type Fetcher interface {
	// Fetch retrieves the repository into the working directory.
	Fetch(ctx context.Context, repoURL string) error
}

// Builder is the build collaborator, selected by language.
type Builder interface {
	// Supports reports whether a build command is registered for the
	// language. Checked before any collaborator is invoked.
	Supports(language string) bool

	// Build runs the language's build command in the working directory.
	Build(ctx context.Context, language string) error
}

// Deployer resolves and invokes the deployment strategy.
type Deployer interface {
	// Supports reports whether a strategy is registered for the
	// provider key. Checked before any collaborator is invoked.
	Supports(key string) bool

	// Deploy dispatches the configured provider's strategy.
	Deploy(ctx context.Context, cfg *config.RunConfig, execCtx *provider.ExecContext) error
}

// registryDeployer adapts a provider registry to the Deployer interface.
type registryDeployer struct {
	registry *provider.Registry
}

// NewRegistryDeployer wraps a strategy registry as the pipeline's
// deploy collaborator.
func NewRegistryDeployer(registry *provider.Registry) Deployer {
	return &registryDeployer{registry: registry}
}

func (d *registryDeployer) Supports(key string) bool {
	return d.registry.Supports(key)
}

func (d *registryDeployer) Deploy(ctx context.Context, cfg *config.RunConfig, execCtx *provider.ExecContext) error {
	return d.registry.Dispatch(ctx, cfg, execCtx)
}

// Compile-time interface verification.
var (
	_ Fetcher = (*gitops.Fetcher)(nil)
	_ Builder = (*build.Builder)(nil)
)
