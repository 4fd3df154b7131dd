// Package main is the entry point for the shipit CLI.
//
// shipit automates the "save everything and push" ritual for repositories
// that carry n8n workflow definitions: it resolves the committer identity
// from the configured remote, exports workflows out of the running n8n
// Compose service into the repository, then stages, commits, and pushes
// with an escalating push-strategy chain.
//
// All functionality lives in internal/cli; this file only injects
// build-time version information and hands control to cobra.
package main

import (
	"github.com/mmr-tortoise/shipit/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time via
// ldflags. During development they default to "dev", "none", "unknown".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
