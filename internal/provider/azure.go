package provider

import (
	"context"

	"github.com/cameronsjo/stevedore/internal/config"
)

// azureStrategy deploys by syncing the Web App deployment source for the
// app named after the run label. The resource group follows the
// <label>-rg convention.
type azureStrategy struct {
	cfg *config.RunConfig
}

// NewAzureStrategy constructs the Azure deployment strategy.
func NewAzureStrategy(cfg *config.RunConfig) Strategy {
	return &azureStrategy{cfg: cfg}
}

func (s *azureStrategy) Deploy(ctx context.Context, execCtx *ExecContext) error {
	return execCtx.Run(ctx, "az",
		"webapp", "deployment", "source", "sync",
		"--name", s.cfg.Label,
		"--resource-group", s.cfg.Label+"-rg",
	)
}
