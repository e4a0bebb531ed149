package provider

import (
	"context"

	"github.com/cameronsjo/stevedore/internal/config"
)

// gcpStrategy deploys the run's container image to Cloud Run under the
// service named after the run label.
type gcpStrategy struct {
	cfg *config.RunConfig
}

// NewGCPStrategy constructs the GCP deployment strategy.
func NewGCPStrategy(cfg *config.RunConfig) Strategy {
	return &gcpStrategy{cfg: cfg}
}

func (s *gcpStrategy) Deploy(ctx context.Context, execCtx *ExecContext) error {
	return execCtx.Run(ctx, "gcloud",
		"run", "deploy", s.cfg.Label,
		"--image", s.cfg.DefaultContainer,
		"--quiet",
	)
}
