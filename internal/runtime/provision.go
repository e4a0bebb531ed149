package runtime

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"gopkg.in/yaml.v3"
)

// podManifest is the subset of a rendered pod spec the provisioner acts
// on. Fields the local runtime cannot honor (volumes, restart policy)
// are ignored rather than rejected.
type podManifest struct {
	Metadata struct {
		Name   string            `yaml:"name"`
		Labels map[string]string `yaml:"labels"`
	} `yaml:"metadata"`
	Spec struct {
		Containers []podContainer `yaml:"containers"`
	} `yaml:"spec"`
}

type podContainer struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
	TTY   bool   `yaml:"tty"`
	Env   []struct {
		Name  string `yaml:"name"`
		Value string `yaml:"value"`
	} `yaml:"env"`
	Ports []struct {
		ContainerPort int `yaml:"containerPort"`
	} `yaml:"ports"`
}

// Provisioner creates execution-environment containers from rendered
// manifests.
type Provisioner struct {
	api DockerAPI
}

// NewProvisioner connects to the Docker daemon from the environment.
func NewProvisioner() (*Provisioner, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return &Provisioner{api: cli}, nil
}

// NewProvisionerWithAPI creates a provisioner with a custom API
// implementation. Primarily used for testing with mocks.
func NewProvisionerWithAPI(api DockerAPI) *Provisioner {
	return &Provisioner{api: api}
}

// Ping tests the connection to the Docker daemon.
func (p *Provisioner) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.api.Ping(ctx); err != nil {
		return fmt.Errorf("ping docker: %w", err)
	}
	return nil
}

// Provision pulls the image from the manifest's first container and
// creates and starts it. Returns the container ID.
func (p *Provisioner) Provision(ctx context.Context, manifestText string) (string, error) {
	var pod podManifest
	if err := yaml.Unmarshal([]byte(manifestText), &pod); err != nil {
		return "", fmt.Errorf("parse pod manifest: %w", err)
	}
	if len(pod.Spec.Containers) == 0 {
		return "", fmt.Errorf("pod manifest %q has no containers", pod.Metadata.Name)
	}

	spec := pod.Spec.Containers[0]

	reader, err := p.api.ImagePull(ctx, spec.Image, image.PullOptions{})
	if err != nil {
		return "", fmt.Errorf("pull image %s: %w", spec.Image, err)
	}
	// Pull output must be drained for the pull to complete.
	io.Copy(io.Discard, reader)
	reader.Close()

	env := make([]string, 0, len(spec.Env))
	for _, e := range spec.Env {
		env = append(env, e.Name+"="+e.Value)
	}

	exposed := nat.PortSet{}
	for _, port := range spec.Ports {
		p, err := nat.NewPort("tcp", strconv.Itoa(port.ContainerPort))
		if err != nil {
			return "", fmt.Errorf("invalid container port %d: %w", port.ContainerPort, err)
		}
		exposed[p] = struct{}{}
	}

	cfg := &container.Config{
		Image:        spec.Image,
		Env:          env,
		Tty:          spec.TTY,
		Labels:       pod.Metadata.Labels,
		ExposedPorts: exposed,
	}

	resp, err := p.api.ContainerCreate(ctx, cfg, nil, nil, nil, pod.Metadata.Name)
	if err != nil {
		return "", fmt.Errorf("create container %s: %w", pod.Metadata.Name, err)
	}

	if err := p.api.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("start container %s: %w", pod.Metadata.Name, err)
	}

	return resp.ID, nil
}

// Teardown force-removes a provisioned container.
func (p *Provisioner) Teardown(ctx context.Context, containerID string) error {
	err := p.api.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true})
	if err != nil {
		return fmt.Errorf("remove container %s: %w", containerID, err)
	}
	return nil
}

// Close closes the underlying client connection.
func (p *Provisioner) Close() error {
	if p.api != nil {
		return p.api.Close()
	}
	return nil
}
