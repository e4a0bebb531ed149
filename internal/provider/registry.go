package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/manifest"
)

// Registry maps provider keys to strategy constructors. Registration
// happens at process initialization; after that the registry is
// effectively read-only and lookups need no coordination beyond the
// internal RWMutex, which exists so tests can build registries freely.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Register adds or overrides the strategy constructor for a provider key.
// Intended for process-wide initialization only.
func (r *Registry) Register(key string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[key] = ctor
}

// Supports reports whether a strategy is registered for the key.
func (r *Registry) Supports(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[key]
	return ok
}

// Resolve returns the constructor for the key, or
// UnsupportedProviderError if none is registered.
func (r *Registry) Resolve(key string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, ok := r.constructors[key]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: key}
	}
	return ctor, nil
}

// Keys returns the sorted list of registered provider keys.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.constructors))
	for k := range r.constructors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dispatch resolves the strategy for the configured provider, constructs
// it, and invokes Deploy exactly once. The lookup happens before any
// provider-specific side effect; a missing strategy fails with
// UnsupportedProviderError and nothing else runs. Errors from Deploy are
// propagated unchanged, tagged with the provider key for diagnostics.
func (r *Registry) Dispatch(ctx context.Context, cfg *config.RunConfig, execCtx *ExecContext) error {
	ctor, err := r.Resolve(cfg.CloudProvider)
	if err != nil {
		return err
	}

	strategy := ctor(cfg)
	if err := strategy.Deploy(ctx, execCtx); err != nil {
		return fmt.Errorf("provider %q: %w", cfg.CloudProvider, err)
	}
	return nil
}

// CheckConsistency cross-checks the registry against a template store.
// A provider with a template but no strategy (or the reverse) is reported
// as a distinct configuration error. Called at startup so inconsistent
// registrations surface before any run.
func (r *Registry) CheckConsistency(store *manifest.Store) []error {
	var problems []error

	registered := make(map[string]bool)
	for _, key := range r.Keys() {
		registered[key] = true
	}
	templated := make(map[string]bool)
	for _, key := range store.Providers() {
		templated[key] = true
	}

	for key := range templated {
		if !registered[key] {
			problems = append(problems, fmt.Errorf("provider %q has a pod template but no deployment strategy", key))
		}
	}
	for key := range registered {
		if !templated[key] {
			problems = append(problems, fmt.Errorf("provider %q has a deployment strategy but no pod template", key))
		}
	}

	sort.Slice(problems, func(i, j int) bool {
		return problems[i].Error() < problems[j].Error()
	})
	return problems
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry with the built-in cloud
// strategies registered.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry()
		r.Register(config.ProviderAWS, NewAWSStrategy)
		r.Register(config.ProviderAzure, NewAzureStrategy)
		r.Register(config.ProviderGCP, NewGCPStrategy)
		defaultRegistry = r
	})
	return defaultRegistry
}
