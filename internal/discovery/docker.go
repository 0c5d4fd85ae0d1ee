package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/flarehq/flare/internal/domain"
	"github.com/flarehq/flare/internal/logger"
	"github.com/flarehq/flare/internal/utils"
)

const (
	// DefaultDockerSocket is the conventional local daemon socket.
	DefaultDockerSocket = "/var/run/docker.sock"

	dockerDefaultIcon = "docker"
)

// dockerContainer is the subset of the daemon's container listing we
// read. Everything relevant rides in the labels.
type dockerContainer struct {
	ID     string            `json:"Id"`
	Names  []string          `json:"Names"`
	Labels map[string]string `json:"Labels"`
}

// DockerAdapter lists running containers over the local daemon socket
// and reads flame.* labels. It never mutates container state.
type DockerAdapter struct {
	client  *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// NewDockerAdapter builds an adapter against the unix socket at
// socketPath. timeout bounds each Discover call.
func NewDockerAdapter(socketPath string, timeout time.Duration, log logger.Logger) *DockerAdapter {
	if socketPath == "" {
		socketPath = DefaultDockerSocket
	}
	return &DockerAdapter{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					return d.DialContext(ctx, "unix", socketPath)
				},
			},
		},
		timeout: timeout,
		logger:  log,
	}
}

func (a *DockerAdapter) Name() string { return "docker" }

func (a *DockerAdapter) Discover(ctx context.Context) ([]domain.DiscoveredService, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// Host is ignored by the unix transport but required by net/http.
	endpoint := "http://docker/containers/json?filters=" +
		url.QueryEscape(`{"status":["running"]}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building docker request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: docker socket: %v", ErrUnavailable, err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: docker socket returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var containers []dockerContainer
	if err := json.NewDecoder(resp.Body).Decode(&containers); err != nil {
		return nil, fmt.Errorf("%w: malformed docker response: %v", ErrUnavailable, err)
	}

	services := make([]domain.DiscoveredService, 0, len(containers))
	for _, c := range containers {
		if len(c.Labels) == 0 {
			continue
		}
		svc, err := parseService(c.Labels, dockerLabels, dockerDefaultIcon, a.Name())
		if err != nil {
			// Containers without flame labels are the normal case,
			// only half-labelled ones are worth a log line.
			if c.Labels[dockerLabels.key(fieldName)] != "" {
				a.logger.Warn("skipping misconfigured container",
					logger.String("container", c.ID),
					logger.Error(err))
			}
			continue
		}
		services = append(services, svc)
	}
	return services, nil
}
