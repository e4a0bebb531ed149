// Package config loads and validates stevedore run configurations.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Well-known language identifiers. The build registry may extend this set;
// these constants cover the languages stevedore ships builders for.
const (
	LanguageJava = "java"
	LanguageNode = "node"
)

// Well-known provider keys. The provider registry may extend this set;
// these constants cover the clouds stevedore ships strategies for.
const (
	ProviderAWS   = "aws"
	ProviderAzure = "azure"
	ProviderGCP   = "gcp"
)

// DefaultConfigFile is the config filename looked up when -f is not given.
const DefaultConfigFile = "stevedore.yaml"

// RunConfig describes one pipeline invocation. It is treated as immutable
// once loaded; defaults for the optional fields are resolved by the
// variable binder, never written back here.
type RunConfig struct {
	// Label names the deployment (service name, ECS service, etc.).
	Label string `yaml:"label" validate:"required"`

	// DefaultContainer is the image used for the execution environment.
	DefaultContainer string `yaml:"defaultContainer" validate:"required"`

	// RepoURL is the source repository to check out.
	RepoURL string `yaml:"repoUrl" validate:"required,url"`

	// Language selects the build command (java, node, ...).
	Language string `yaml:"language" validate:"required"`

	// CloudProvider selects both the pod template and the deployment
	// strategy (aws, azure, gcp, ...).
	CloudProvider string `yaml:"cloudProvider" validate:"required"`

	// AppLabel is the app label stamped into the pod template.
	// Optional; defaults to "default-app".
	AppLabel string `yaml:"appLabel,omitempty"`

	// ContainerName names the container in the pod template.
	// Optional; defaults to "main-container".
	ContainerName string `yaml:"containerName,omitempty"`

	// JavaVersion pins the JDK in the execution environment.
	// Optional; defaults to "17".
	JavaVersion string `yaml:"javaVersion,omitempty"`

	// NodeVersion pins Node.js in the execution environment.
	// Optional; defaults to "16".
	NodeVersion string `yaml:"nodeVersion,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and validates a run configuration from a YAML file.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes and validates a run configuration from YAML bytes.
// Unknown fields are rejected so typos surface instead of silently
// falling through to defaults.
func Parse(data []byte) (*RunConfig, error) {
	var cfg RunConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and field formats. Language and provider
// membership is checked against the live registries at dispatch time, not
// here, so registry extensions need no config change.
func (c *RunConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		// Surface the first problem with the yaml field name.
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("missing required field %q", yamlFieldName(fe.Field()))
		case "url":
			return fmt.Errorf("field %q must be a valid URL", yamlFieldName(fe.Field()))
		default:
			return fmt.Errorf("field %q failed %s validation", yamlFieldName(fe.Field()), fe.Tag())
		}
	}

	return fmt.Errorf("validate config: %w", err)
}

// yamlFieldName maps Go struct field names to their yaml spellings.
func yamlFieldName(goName string) string {
	switch goName {
	case "Label":
		return "label"
	case "DefaultContainer":
		return "defaultContainer"
	case "RepoURL":
		return "repoUrl"
	case "Language":
		return "language"
	case "CloudProvider":
		return "cloudProvider"
	case "AppLabel":
		return "appLabel"
	case "ContainerName":
		return "containerName"
	case "JavaVersion":
		return "javaVersion"
	case "NodeVersion":
		return "nodeVersion"
	}
	return goName
}
