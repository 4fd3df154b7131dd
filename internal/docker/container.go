package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/mmr-tortoise/shipit/internal/model"
)

// ComposeServiceLabel is the label Docker Compose stamps on every
// container it creates, naming the service definition the container was
// started from. shipit uses it to find the running n8n container.
const ComposeServiceLabel = "com.docker.compose.service"

// ServiceContainer is the minimal description of a running Compose
// service container needed by the exporter.
type ServiceContainer struct {
	// ID is the Docker container identifier, used for `docker cp`.
	ID string

	// Name is the container name with the API's leading "/" stripped.
	Name string

	// Project is the Compose project name from the container's labels,
	// useful in diagnostics when several stacks run the same service.
	Project string
}

// FindServiceContainer returns the running container for the named
// Compose service. The lookup is done server-side with a label filter,
// restricted to running containers: a stopped n8n cannot export anything,
// so for the exporter's purposes it does not exist.
//
// Exactly one match is required. Zero matches yields a CLIError telling
// the user to start the stack; multiple matches (several projects running
// the same service) is ambiguous and also fatal, naming the candidates.
func FindServiceContainer(ctx context.Context, cli *Client, service string) (ServiceContainer, error) {
	filterArgs := filters.NewArgs(
		filters.Arg("label", ComposeServiceLabel+"="+service),
	)

	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     false,
		Filters: filterArgs,
	})
	if err != nil {
		return ServiceContainer{}, model.WrapCLIError(
			model.ExitDockerUnavailable,
			"failed to list Docker containers",
			err,
		)
	}

	switch len(containers) {
	case 0:
		return ServiceContainer{}, model.NewCLIError(
			model.ExitExportFailed,
			fmt.Sprintf("no running container for compose service %q — start the stack with `docker compose up -d` first", service),
		)
	case 1:
		return toServiceContainer(containers[0]), nil
	default:
		names := make([]string, 0, len(containers))
		for _, c := range containers {
			names = append(names, toServiceContainer(c).Name)
		}
		return ServiceContainer{}, model.NewCLIError(
			model.ExitExportFailed,
			fmt.Sprintf("multiple running containers for compose service %q (%s) — stop the stacks that don't belong to this repository", service, strings.Join(names, ", ")),
		)
	}
}

// toServiceContainer maps a Docker API container to the domain shape.
func toServiceContainer(c types.Container) ServiceContainer {
	name := ""
	if len(c.Names) > 0 {
		// The API reports names with a leading "/".
		name = strings.TrimPrefix(c.Names[0], "/")
	}
	return ServiceContainer{
		ID:      c.ID,
		Name:    name,
		Project: c.Labels["com.docker.compose.project"],
	}
}
