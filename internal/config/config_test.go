package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `label: orders
defaultContainer: orders:latest
repoUrl: https://example.com/orders.git
language: java
cloudProvider: aws
`

func TestParse(t *testing.T) {
	t.Run("valid minimal config", func(t *testing.T) {
		cfg, err := Parse([]byte(validYAML))
		require.NoError(t, err)

		assert.Equal(t, "orders", cfg.Label)
		assert.Equal(t, "orders:latest", cfg.DefaultContainer)
		assert.Equal(t, "https://example.com/orders.git", cfg.RepoURL)
		assert.Equal(t, LanguageJava, cfg.Language)
		assert.Equal(t, ProviderAWS, cfg.CloudProvider)
	})

	t.Run("optional fields stay empty when unset", func(t *testing.T) {
		cfg, err := Parse([]byte(validYAML))
		require.NoError(t, err)

		assert.Empty(t, cfg.AppLabel)
		assert.Empty(t, cfg.ContainerName)
		assert.Empty(t, cfg.JavaVersion)
		assert.Empty(t, cfg.NodeVersion)
	})

	t.Run("optional fields parse when present", func(t *testing.T) {
		cfg, err := Parse([]byte(validYAML + `appLabel: storefront
containerName: web
javaVersion: "21"
nodeVersion: "20"
`))
		require.NoError(t, err)

		assert.Equal(t, "storefront", cfg.AppLabel)
		assert.Equal(t, "web", cfg.ContainerName)
		assert.Equal(t, "21", cfg.JavaVersion)
		assert.Equal(t, "20", cfg.NodeVersion)
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := Parse([]byte(`label: orders
defaultContainer: orders:latest
repoUrl: https://example.com/orders.git
language: java
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"cloudProvider"`)
	})

	t.Run("bad repo URL", func(t *testing.T) {
		_, err := Parse([]byte(`label: orders
defaultContainer: orders:latest
repoUrl: not-a-url
language: java
cloudProvider: aws
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"repoUrl"`)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := Parse([]byte(validYAML + "cloudprovider: gcp\n"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("label: [unclosed"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		require.NoError(t, os.WriteFile(path, []byte(validYAML), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "orders", cfg.Label)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})

	t.Run("invalid file names the path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("label: orders\n"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}
