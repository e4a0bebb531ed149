package manifest

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed podtemplates/*.yaml
var templateFS embed.FS

// Store is a read-only repository of pod templates keyed by provider.
// The template map is copied at construction and never mutated, so a
// Store is safe for concurrent use without locking.
type Store struct {
	templates map[string]string
}

// NewStore builds a Store from the templates embedded in the binary.
// Template files live under podtemplates/<provider>.yaml.
func NewStore() (*Store, error) {
	templates := make(map[string]string)

	entries, err := fs.ReadDir(templateFS, "podtemplates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		data, err := templateFS.ReadFile(path.Join("podtemplates", name))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		provider := strings.TrimSuffix(name, ".yaml")
		templates[provider] = string(data)
	}

	return &Store{templates: templates}, nil
}

// NewStoreFromMap builds a Store from an explicit provider -> template
// map. The map is copied so later caller mutations cannot leak in.
func NewStoreFromMap(templates map[string]string) *Store {
	copied := make(map[string]string, len(templates))
	for k, v := range templates {
		copied[k] = v
	}
	return &Store{templates: copied}
}

// Resolve returns the template text for the provider key.
// Fails with UnknownProviderError if no template is registered.
func (s *Store) Resolve(provider string) (string, error) {
	tmpl, ok := s.templates[provider]
	if !ok {
		return "", &UnknownProviderError{Provider: provider}
	}
	return tmpl, nil
}

// Providers returns the sorted list of provider keys with templates.
func (s *Store) Providers() []string {
	keys := make([]string, 0, len(s.templates))
	for k := range s.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
)

// DefaultStore returns the process-wide store built from the embedded
// templates. The embedded filesystem is fixed at compile time, so a
// failure here is a packaging bug and panics.
func DefaultStore() *Store {
	defaultStoreOnce.Do(func() {
		s, err := NewStore()
		if err != nil {
			panic(fmt.Sprintf("manifest: load embedded templates: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}
