package build

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/stevedore/internal/config"
)

func TestRegistry(t *testing.T) {
	t.Run("register then resolve", func(t *testing.T) {
		r := NewRegistry()
		r.Register("go", Step{Name: "go", Args: []string{"build", "./..."}})

		assert.True(t, r.Supports("go"))

		steps, err := r.Resolve("go")
		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, "go build ./...", steps[0].String())
	})

	t.Run("unknown language fails typed", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Resolve("cobol")
		require.Error(t, err)

		var unsupported *UnsupportedLanguageError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "cobol", unsupported.Language)
		assert.False(t, r.Supports("cobol"))
	})

	t.Run("languages are sorted", func(t *testing.T) {
		r := NewRegistry()
		r.Register("node")
		r.Register("java")
		assert.Equal(t, []string{"java", "node"}, r.Languages())
	})
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Same(t, r, Default())
	assert.Equal(t, []string{config.LanguageJava, config.LanguageNode}, r.Languages())

	t.Run("java builds with maven", func(t *testing.T) {
		steps, err := r.Resolve(config.LanguageJava)
		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, "mvn -B -DskipTests package", steps[0].String())
	})

	t.Run("node installs then builds", func(t *testing.T) {
		steps, err := r.Resolve(config.LanguageNode)
		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, "npm ci", steps[0].String())
		assert.Equal(t, "npm run build", steps[1].String())
	})
}

func TestBuilder(t *testing.T) {
	t.Run("unsupported language fails before executing", func(t *testing.T) {
		b := NewBuilder(t.TempDir())

		err := b.Build(context.Background(), "cobol")
		require.Error(t, err)

		var unsupported *UnsupportedLanguageError
		assert.ErrorAs(t, err, &unsupported)
	})

	t.Run("runs registered steps in order", func(t *testing.T) {
		r := NewRegistry()
		r.Register("shell",
			Step{Name: "true"},
			Step{Name: "true"},
		)
		b := NewBuilderWithRegistry(r, t.TempDir())

		assert.NoError(t, b.Build(context.Background(), "shell"))
	})

	t.Run("first failing step stops the build", func(t *testing.T) {
		r := NewRegistry()
		r.Register("shell",
			Step{Name: "false"},
			Step{Name: "true"},
		)
		b := NewBuilderWithRegistry(r, t.TempDir())

		err := b.Build(context.Background(), "shell")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `build step "false" failed`)
	})
}
