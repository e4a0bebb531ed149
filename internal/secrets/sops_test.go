package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenEnv(t *testing.T) {
	t.Run("flat keys upper-case", func(t *testing.T) {
		out := make(map[string]string)
		flattenEnv("", map[string]any{"token": "abc", "region": "us-east-1"}, out)

		assert.Equal(t, map[string]string{
			"TOKEN":  "abc",
			"REGION": "us-east-1",
		}, out)
	})

	t.Run("nested maps join with underscores", func(t *testing.T) {
		out := make(map[string]string)
		flattenEnv("", map[string]any{
			"aws": map[string]any{
				"access_key": "AKIA123",
				"secret":     map[string]any{"key": "s3cr3t"},
			},
		}, out)

		assert.Equal(t, map[string]string{
			"AWS_ACCESS_KEY": "AKIA123",
			"AWS_SECRET_KEY": "s3cr3t",
		}, out)
	})

	t.Run("non-string leaves format with %v", func(t *testing.T) {
		out := make(map[string]string)
		flattenEnv("", map[string]any{"port": 5432, "tls": true}, out)

		assert.Equal(t, "5432", out["PORT"])
		assert.Equal(t, "true", out["TLS"])
	})
}
