package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mmr-tortoise/shipit/internal/compose"
	"github.com/mmr-tortoise/shipit/internal/docker"
	"github.com/mmr-tortoise/shipit/internal/model"
)

// ServiceName is the reserved Compose service name that marks a
// repository as export-capable. Only this service's volumes are ever
// inspected.
const ServiceName = "n8n"

// exportSubdir is appended to the service's mount path to form the
// in-container export directory. The trailing slash matches what the n8n
// export command receives as --output.
const exportSubdir = "/exported_workflows/"

// Target is the result of the detection phase: where the compose file is
// and which in-container directory the export writes to.
type Target struct {
	// ComposeFile is the absolute path of the discovered Compose file.
	ComposeFile string

	// MountPath is the n8n service's container-side volume mount.
	MountPath string

	// ExportDir is MountPath plus the export subdirectory, trailing
	// slash included.
	ExportDir string
}

// Detect inspects the repository root and decides whether an export can
// run. The three-way outcome mirrors the run policy:
//
//   - (nil, outcome, nil): skip — no compose file or no n8n service;
//     outcome.Reason says which. Not an error.
//   - (target, outcome, nil): the n8n service and its mount were found.
//   - error: the compose file is broken or the service has no usable
//     mount. Fatal, because a declared n8n service that cannot be
//     exported must not be silently committed around.
func Detect(repoRoot string) (*Target, model.ExportOutcome, error) {
	composeFile, ok := compose.FindFile(repoRoot)
	if !ok {
		return nil, model.ExportOutcome{
			Skipped: true,
			Reason:  "no compose file at repository root",
		}, nil
	}

	mount, err := compose.FirstMountPath(composeFile, ServiceName)
	if err != nil {
		if errors.Is(err, compose.ErrServiceNotFound) {
			return nil, model.ExportOutcome{
				Skipped: true,
				Reason:  fmt.Sprintf("no %q service in %s", ServiceName, composeFile),
			}, nil
		}
		return nil, model.ExportOutcome{}, err
	}

	exportDir := DeriveExportDir(mount)
	target := &Target{
		ComposeFile: composeFile,
		MountPath:   mount,
		ExportDir:   exportDir,
	}
	return target, model.ExportOutcome{MountPath: mount, ExportDir: exportDir}, nil
}

// DeriveExportDir appends the export subdirectory to a mount path,
// stripping any trailing slash first so "/data" and "/data/" both yield
// "/data/exported_workflows/".
func DeriveExportDir(mountPath string) string {
	return strings.TrimRight(mountPath, "/") + exportSubdir
}

// Run executes the full export for a previously detected target:
//
//  1. verify the docker CLI and daemon (hard dependencies at this point)
//  2. locate the running n8n container by its Compose service label
//  3. clear and recreate the export directory inside the container
//  4. run `n8n export:workflow --backup --output=<exportDir>`
//  5. copy the export directory back into the repository root
//
// Every failure is fatal; there is no retry. The copy lands the
// exported_workflows directory directly under repoRoot.
func Run(ctx context.Context, repoRoot string, target *Target) error {
	if !docker.BinaryAvailable() {
		return model.NewCLIError(
			model.ExitDockerUnavailable,
			fmt.Sprintf("%s declares an %q service but the docker CLI is not installed", target.ComposeFile, ServiceName),
		)
	}

	cli, err := docker.NewClient()
	if err != nil {
		return err
	}
	defer cli.Close()

	if err := cli.Ping(ctx); err != nil {
		return err
	}

	ctr, err := docker.FindServiceContainer(ctx, cli, ServiceName)
	if err != nil {
		return err
	}

	// Start from an empty export directory so stale workflow files from a
	// previous run cannot survive into the commit.
	resetCmd := fmt.Sprintf("rm -rf %q && mkdir -p %q", target.ExportDir, target.ExportDir)
	if err := docker.ComposeExec(ctx, repoRoot, ServiceName, "sh", "-c", resetCmd); err != nil {
		return err
	}

	if err := docker.ComposeExec(ctx, repoRoot, ServiceName,
		"n8n", "export:workflow", "--backup", "--output="+target.ExportDir); err != nil {
		return err
	}

	if err := os.MkdirAll(repoRoot, 0755); err != nil {
		return model.WrapCLIError(
			model.ExitExportFailed,
			fmt.Sprintf("failed to ensure destination directory %s", repoRoot),
			err,
		)
	}

	// Copy the whole export directory; docker cp creates
	// <repoRoot>/exported_workflows on the host.
	src := strings.TrimRight(target.ExportDir, "/")
	if err := docker.CopyFromContainer(ctx, ctr.ID, src, repoRoot); err != nil {
		return err
	}

	return nil
}
