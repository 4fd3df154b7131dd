// Package git wraps the Git CLI (via os/exec) with the small set of
// operations shipit needs: repository discovery, remote and branch
// queries, repo-scoped identity configuration, staging, committing, and
// the escalating push-strategy chain.
//
// We shell out to `git` rather than using a Go Git library because the
// push chain depends on hook semantics (--no-verify) and credential/SSH
// configuration that only the real client honors.
package git
