// Package provider implements the deployment strategy registry and
// dispatcher. A strategy is a stateless capability object bound to one
// cloud provider; the registry maps provider keys to strategy
// constructors and is the single extension point for adding clouds.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cameronsjo/stevedore/internal/config"
)

// Runner executes a provider CLI command with extra environment variables.
// Implementations must be safe for concurrent use.
type Runner interface {
	Run(ctx context.Context, env map[string]string, name string, args ...string) error
}

// ExecContext carries the command runner and injected credentials a
// strategy deploys through. It is passed explicitly into every strategy
// invocation; there is no ambient or global execution context.
type ExecContext struct {
	// Runner executes provider commands.
	Runner Runner

	// Env holds credential variables injected into every command.
	Env map[string]string
}

// Run invokes a provider command through the context's runner.
func (e *ExecContext) Run(ctx context.Context, name string, args ...string) error {
	return e.Runner.Run(ctx, e.Env, name, args...)
}

// Strategy is a provider-specific deployment capability. Instances are
// constructed per invocation and hold no shared mutable state.
type Strategy interface {
	// Deploy performs the deployment. No return value on success;
	// fails with the provider execution error otherwise.
	Deploy(ctx context.Context, execCtx *ExecContext) error
}

// Constructor builds a strategy instance for one run configuration.
type Constructor func(cfg *config.RunConfig) Strategy

// ExecRunner runs commands via os/exec with stderr capture.
type ExecRunner struct {
	// Dir is the working directory for commands; empty means inherit.
	Dir string
}

// Run executes the command, merging env on top of the process
// environment. Stderr is captured and folded into the returned error.
func (r *ExecRunner) Run(ctx context.Context, env map[string]string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("%s failed: %w: %s", name, err, detail)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
