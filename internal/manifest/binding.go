package manifest

import (
	"github.com/cameronsjo/stevedore/internal/config"
)

// Documented defaults applied by the binder for unset optional fields.
const (
	DefaultAppLabel      = "default-app"
	DefaultContainerName = "main-container"
	DefaultJavaVersion   = "17"
	DefaultNodeVersion   = "16"
)

// Binding maps placeholder names to the values rendered into a template.
type Binding map[string]string

// Bind derives the rendering variables for a run configuration.
// Configured values are copied verbatim; unset optional fields resolve to
// the documented defaults, so nothing downstream ever sees an empty
// optional. Bind is deterministic and has no side effects.
func Bind(cfg *config.RunConfig) Binding {
	return Binding{
		"label":            cfg.Label,
		"defaultContainer": cfg.DefaultContainer,
		"repoUrl":          cfg.RepoURL,
		"language":         cfg.Language,
		"cloudProvider":    cfg.CloudProvider,
		"appLabel":         orDefault(cfg.AppLabel, DefaultAppLabel),
		"containerName":    orDefault(cfg.ContainerName, DefaultContainerName),
		"javaVersion":      orDefault(cfg.JavaVersion, DefaultJavaVersion),
		"nodeVersion":      orDefault(cfg.NodeVersion, DefaultNodeVersion),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
