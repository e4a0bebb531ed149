package provider

import (
	"context"

	"github.com/cameronsjo/stevedore/internal/config"
)

// awsStrategy deploys by forcing a new deployment of the ECS service
// named after the run label. The cluster follows the <label>-cluster
// convention.
type awsStrategy struct {
	cfg *config.RunConfig
}

// NewAWSStrategy constructs the AWS deployment strategy.
func NewAWSStrategy(cfg *config.RunConfig) Strategy {
	return &awsStrategy{cfg: cfg}
}

func (s *awsStrategy) Deploy(ctx context.Context, execCtx *ExecContext) error {
	return execCtx.Run(ctx, "aws",
		"ecs", "update-service",
		"--cluster", s.cfg.Label+"-cluster",
		"--service", s.cfg.Label,
		"--force-new-deployment",
	)
}
