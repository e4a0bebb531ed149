package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/stevedore/internal/config"
)

func TestWriteScaffold(t *testing.T) {
	t.Run("config scaffold renders to a loadable config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		data := scaffoldData{
			Name:     "My Service",
			RepoURL:  "https://example.com/my-service.git",
			Language: config.LanguageNode,
			Provider: config.ProviderGCP,
		}

		require.NoError(t, writeScaffold(path, configScaffold, data))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "my-service", cfg.Label, "sprig lower+replace normalizes the name")
		assert.Equal(t, "my-service:latest", cfg.DefaultContainer)
		assert.Equal(t, config.LanguageNode, cfg.Language)
		assert.Equal(t, config.ProviderGCP, cfg.CloudProvider)
	})

	t.Run("ci scaffold names the workflow after the project", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deploy.yaml")
		data := scaffoldData{Name: "Orders API"}

		require.NoError(t, writeScaffold(path, ciScaffold, data))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "name: deploy-orders-api")
	})
}
