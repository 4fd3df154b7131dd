package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/shipit/internal/model"
)

// ComposeExec runs a command inside the named service's container via
// `docker compose exec -T <service> <command...>`, executed in projectDir
// so Compose resolves the project's own compose file. The -T flag
// disables TTY allocation, which is required when stdin is not a
// terminal (CI, cron, other scripts).
//
// Output is captured and returned inside the error on failure; compose
// exec failures are always fatal to the export.
func ComposeExec(ctx context.Context, projectDir, service string, command ...string) error {
	args := make([]string, 0, len(command)+4)
	args = append(args, "compose", "exec", "-T", service)
	args = append(args, command...)

	return runDocker(ctx, projectDir, args,
		fmt.Sprintf("docker compose exec %s failed", service))
}

// CopyFromContainer copies a path out of a container to the host via
// `docker cp <containerID>:<srcPath> <destDir>`. The container is
// addressed by ID (resolved through the SDK lookup) rather than service
// name, so the copy is unambiguous even with several Compose projects up.
func CopyFromContainer(ctx context.Context, containerID, srcPath, destDir string) error {
	args := []string{"cp", containerID + ":" + srcPath, destDir}

	return runDocker(ctx, "", args,
		fmt.Sprintf("docker cp from container %s failed", shortID(containerID)))
}

// runDocker executes a docker CLI command, inheriting the environment so
// DOCKER_HOST and context selection behave exactly as in the user's
// shell. dir may be empty for commands that are directory-independent.
func runDocker(ctx context.Context, dir string, args []string, failMessage string) error {
	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		message := failMessage
		if s := strings.TrimSpace(string(output)); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return model.WrapCLIError(model.ExitExportFailed, message, err)
	}

	return nil
}

// shortID trims a container ID to the familiar 12-character form.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
