package runtime

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAPI records the docker calls the provisioner makes.
type mockAPI struct {
	pingErr   error
	pullErr   error
	createErr error
	startErr  error
	removeErr error

	pulledRef     string
	createdConfig *container.Config
	createdName   string
	startedID     string
	removedID     string
	removeForce   bool
	closed        bool
}

func (m *mockAPI) Ping(ctx context.Context) (types.Ping, error) {
	return types.Ping{}, m.pingErr
}

func (m *mockAPI) ImagePull(ctx context.Context, ref string, options image.PullOptions) (io.ReadCloser, error) {
	if m.pullErr != nil {
		return nil, m.pullErr
	}
	m.pulledRef = ref
	return io.NopCloser(strings.NewReader("{}")), nil
}

func (m *mockAPI) ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error) {
	if m.createErr != nil {
		return container.CreateResponse{}, m.createErr
	}
	m.createdConfig = config
	m.createdName = containerName
	return container.CreateResponse{ID: "container-123"}, nil
}

func (m *mockAPI) ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.startedID = containerID
	return nil
}

func (m *mockAPI) ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removedID = containerID
	m.removeForce = options.Force
	return nil
}

func (m *mockAPI) Close() error {
	m.closed = true
	return nil
}

const sampleManifest = `apiVersion: v1
kind: Pod
metadata:
  name: orders
  labels:
    app: storefront
spec:
  containers:
    - name: main-container
      image: orders:latest
      tty: true
      env:
        - name: JAVA_VERSION
          value: "17"
      ports:
        - containerPort: 8080
`

func TestProvision(t *testing.T) {
	t.Run("pulls, creates, and starts from the manifest", func(t *testing.T) {
		api := &mockAPI{}
		p := NewProvisionerWithAPI(api)

		id, err := p.Provision(context.Background(), sampleManifest)
		require.NoError(t, err)
		assert.Equal(t, "container-123", id)

		assert.Equal(t, "orders:latest", api.pulledRef)
		assert.Equal(t, "orders", api.createdName)
		assert.Equal(t, "container-123", api.startedID)

		require.NotNil(t, api.createdConfig)
		assert.Equal(t, "orders:latest", api.createdConfig.Image)
		assert.True(t, api.createdConfig.Tty)
		assert.Contains(t, api.createdConfig.Env, "JAVA_VERSION=17")
		assert.Equal(t, "storefront", api.createdConfig.Labels["app"])
		assert.Len(t, api.createdConfig.ExposedPorts, 1)
	})

	t.Run("manifest without containers fails", func(t *testing.T) {
		p := NewProvisionerWithAPI(&mockAPI{})

		_, err := p.Provision(context.Background(), "metadata:\n  name: empty\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no containers")
	})

	t.Run("unparseable manifest fails", func(t *testing.T) {
		p := NewProvisionerWithAPI(&mockAPI{})

		_, err := p.Provision(context.Background(), "not: [valid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse pod manifest")
	})

	t.Run("pull failure stops before create", func(t *testing.T) {
		api := &mockAPI{pullErr: errors.New("registry down")}
		p := NewProvisionerWithAPI(api)

		_, err := p.Provision(context.Background(), sampleManifest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pull image")
		assert.Empty(t, api.createdName)
	})

	t.Run("start failure surfaces the container name", func(t *testing.T) {
		api := &mockAPI{startErr: errors.New("port in use")}
		p := NewProvisionerWithAPI(api)

		_, err := p.Provision(context.Background(), sampleManifest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start container orders")
	})
}

func TestPing(t *testing.T) {
	t.Run("reachable daemon", func(t *testing.T) {
		p := NewProvisionerWithAPI(&mockAPI{})
		assert.NoError(t, p.Ping(context.Background()))
	})

	t.Run("unreachable daemon", func(t *testing.T) {
		p := NewProvisionerWithAPI(&mockAPI{pingErr: errors.New("no socket")})
		err := p.Ping(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ping docker")
	})
}

func TestTeardown(t *testing.T) {
	api := &mockAPI{}
	p := NewProvisionerWithAPI(api)

	require.NoError(t, p.Teardown(context.Background(), "container-123"))
	assert.Equal(t, "container-123", api.removedID)
	assert.True(t, api.removeForce)
}

func TestClose(t *testing.T) {
	api := &mockAPI{}
	p := NewProvisionerWithAPI(api)

	require.NoError(t, p.Close())
	assert.True(t, api.closed)
}
