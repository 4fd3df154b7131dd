// Package docker provides the container-side plumbing for the workflow
// exporter: Docker Engine SDK access (socket detection, daemon ping,
// label-based lookup of the running Compose service container) and the
// docker CLI child processes used for `compose exec` and `cp`.
//
// The split mirrors how the docker CLI itself is layered: queries go
// through the SDK, compose verbs go through the CLI so Compose project
// semantics (file resolution, service naming) stay authoritative.
package docker
