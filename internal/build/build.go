// Package build maps project languages to build commands and executes
// them. The language table is a total-function lookup: every unmapped
// language surfaces UnsupportedLanguageError before any command runs,
// and registering a language is the only way to extend the set.
package build

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/cameronsjo/stevedore/internal/config"
)

// UnsupportedLanguageError indicates no build command is registered for a
// language. It is raised before any build tool is invoked.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q", e.Language)
}

// Step is one build command invocation.
type Step struct {
	Name string
	Args []string
}

// String returns the command line for display.
func (s Step) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// Registry maps languages to their build steps. Registration happens at
// process initialization; lookups after that are read-only.
type Registry struct {
	mu    sync.RWMutex
	steps map[string][]Step
}

// NewRegistry creates an empty build registry.
func NewRegistry() *Registry {
	return &Registry{steps: make(map[string][]Step)}
}

// Register adds or overrides the build steps for a language.
func (r *Registry) Register(language string, steps ...Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[language] = steps
}

// Supports reports whether build steps are registered for the language.
func (r *Registry) Supports(language string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.steps[language]
	return ok
}

// Resolve returns the build steps for the language, or
// UnsupportedLanguageError if none are registered.
func (r *Registry) Resolve(language string) ([]Step, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	steps, ok := r.steps[language]
	if !ok {
		return nil, &UnsupportedLanguageError{Language: language}
	}
	return steps, nil
}

// Languages returns the sorted list of registered languages.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.steps))
	for l := range r.steps {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry with the built-in language
// build commands registered.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r := NewRegistry()
		r.Register(config.LanguageJava,
			Step{Name: "mvn", Args: []string{"-B", "-DskipTests", "package"}},
		)
		r.Register(config.LanguageNode,
			Step{Name: "npm", Args: []string{"ci"}},
			Step{Name: "npm", Args: []string{"run", "build"}},
		)
		defaultRegistry = r
	})
	return defaultRegistry
}

// Builder executes registered build steps in a working directory.
type Builder struct {
	registry *Registry
	dir      string
}

// NewBuilder creates a builder over the default registry rooted at dir.
func NewBuilder(dir string) *Builder {
	return &Builder{registry: Default(), dir: dir}
}

// NewBuilderWithRegistry creates a builder over an explicit registry.
func NewBuilderWithRegistry(registry *Registry, dir string) *Builder {
	return &Builder{registry: registry, dir: dir}
}

// Supports reports whether the builder can build the language.
func (b *Builder) Supports(language string) bool {
	return b.registry.Supports(language)
}

// Build runs the registered steps for the language in order, stopping at
// the first failure. The language is resolved before anything executes.
func (b *Builder) Build(ctx context.Context, language string) error {
	steps, err := b.registry.Resolve(language)
	if err != nil {
		return err
	}

	for _, step := range steps {
		cmd := exec.CommandContext(ctx, step.Name, step.Args...)
		cmd.Dir = b.dir

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			detail := strings.TrimSpace(stderr.String())
			if detail != "" {
				return fmt.Errorf("build step %q failed: %w: %s", step.String(), err, detail)
			}
			return fmt.Errorf("build step %q failed: %w", step.String(), err)
		}
	}

	return nil
}
