package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/shipit/internal/model"
)

// fileCandidates are the recognized Compose file names at the repository
// root, in priority order. Both the legacy docker-compose.* names and the
// newer compose.* names are accepted.
var fileCandidates = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// ErrServiceNotFound is returned by FirstMountPath when the Compose file
// parses cleanly but does not declare the requested service. Callers
// treat it as a skip condition, not a failure.
var ErrServiceNotFound = fmt.Errorf("service not declared in compose file")

// FindFile returns the path of the first Compose file present at root.
// The boolean is false when none of the candidate names exist — a normal
// condition for repositories without a service stack.
func FindFile(root string) (string, bool) {
	for _, name := range fileCandidates {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// composeFile is the minimal Compose document shape we care about.
// Everything except services.<name>.volumes is ignored.
type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	// Volumes entries are either short-syntax strings
	// ("vol:/path", "/host:/path:ro", "/path") or long-syntax maps with a
	// "target" key, so they must be decoded generically.
	Volumes []yaml.Node `yaml:"volumes"`
}

// FirstMountPath parses the Compose file at path and returns the first
// absolute container-side path among the volume mounts of the named
// service.
//
// Failure modes are distinguished deliberately:
//   - unreadable or unparseable file → fatal CLIError (a broken file must
//     not masquerade as "no service")
//   - service absent → ErrServiceNotFound (skip condition)
//   - service present but no absolute mount → fatal CLIError with
//     guidance on the expected volume format
func FirstMountPath(path, service string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitExportFailed,
			fmt.Sprintf("failed to read compose file %s", path),
			err,
		)
	}

	var doc composeFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", model.WrapCLIError(
			model.ExitExportFailed,
			fmt.Sprintf("failed to parse compose file %s", path),
			err,
		)
	}

	svc, ok := doc.Services[service]
	if !ok {
		return "", ErrServiceNotFound
	}

	for _, node := range svc.Volumes {
		if mount, ok := mountPathFromEntry(node); ok {
			return mount, nil
		}
	}

	return "", model.NewCLIError(
		model.ExitExportFailed,
		fmt.Sprintf(
			"service %q in %s has no volume with an absolute container path — expected an entry like \"data:/home/node/.n8n\" or \"- target: /home/node/.n8n\"",
			service, path,
		),
	)
}

// mountPathFromEntry extracts the container-side path from one volumes
// list entry. Short syntax is colon-separated with the container path as
// the first absolute segment ("n8n_data:/home/node/.n8n" → second
// segment; bare "/home/node/.n8n" → first). Long syntax uses the target
// field. Entries of neither shape report no match.
func mountPathFromEntry(node yaml.Node) (string, bool) {
	switch node.Kind {
	case yaml.ScalarNode:
		return mountPathFromShortSyntax(node.Value)

	case yaml.MappingNode:
		var long struct {
			Target string `yaml:"target"`
		}
		if err := node.Decode(&long); err != nil {
			return "", false
		}
		target := strings.TrimSpace(long.Target)
		if strings.HasPrefix(target, "/") {
			return target, true
		}
	}
	return "", false
}

// mountPathFromShortSyntax finds the first absolute segment in a
// colon-separated short-syntax volume entry. Named-volume sources
// ("n8n_data") and access-mode suffixes ("ro") are not absolute and fall
// through naturally.
func mountPathFromShortSyntax(entry string) (string, bool) {
	for _, segment := range strings.Split(entry, ":") {
		segment = strings.TrimSpace(segment)
		if strings.HasPrefix(segment, "/") {
			return segment, true
		}
	}
	return "", false
}
