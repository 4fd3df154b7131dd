// Package export implements the n8n workflow export step: detect an n8n
// service in the repository's Compose file, derive the in-container
// export directory from its volume mount, run n8n's own export command
// inside the running container, and copy the result back into the
// repository.
//
// Detection (compose file present? n8n declared? where is its mount?) is
// separated from execution so the cheap, filesystem-only half is testable
// without Docker.
package export
