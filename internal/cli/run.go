// run.go implements the shipit run: one linear pass from repository
// discovery through identity, export, staging, commit, and the push
// chain. Every step either succeeds, skips with a notice, or terminates
// the process — there is no rollback of completed steps.
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/mmr-tortoise/shipit/internal/export"
	"github.com/mmr-tortoise/shipit/internal/git"
	"github.com/mmr-tortoise/shipit/internal/identity"
	"github.com/mmr-tortoise/shipit/internal/model"
)

// runOptions carries the flag values into the run. Set once at startup,
// immutable afterwards.
type runOptions struct {
	SkipExport   bool
	StrictCommit bool
}

// joinMessage builds the commit message from the positional arguments,
// joined with single spaces. Flag-looking tokens are already literal text
// by the time they arrive here (interspersion is disabled in root.go).
func joinMessage(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// runShip executes the full sequence. Called from the root command's RunE
// with the positional arguments as the message words. The git manager is
// injected so orchestration policy (commit-failure handling, skip-export,
// push escalation) can be exercised with a scripted runner.
func runShip(ctx context.Context, gm *git.Manager, messageArgs []string, opts runOptions) error {
	message := joinMessage(messageArgs)
	if message == "" {
		return model.NewCLIError(model.ExitUsage, "commit message is required")
	}

	// Step 1: resolve the repository root from the current directory.
	// Every later git command targets this root via -C, which stands in
	// for the original "cd to repo root" with identical semantics.
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	repoRoot, err := gm.RepoRoot(cwd)
	if err != nil {
		return model.WrapCLIError(model.ExitNotARepository, "not inside a Git repository", err)
	}
	VerboseLog("repository root: %s", repoRoot)

	// Step 2: read the origin remote and resolve the committer identity.
	// No remote and no matching rule are both fatal — shipit never
	// guesses an identity.
	remoteURL, err := gm.RemoteURL(repoRoot, "origin")
	if err != nil {
		return model.WrapCLIError(model.ExitNotARepository, "no origin remote configured", err)
	}
	VerboseLog("origin remote: %s", remoteURL)

	rules, err := identity.LoadRules(repoRoot)
	if err != nil {
		return err
	}

	profile, err := identity.Resolve(remoteURL, rules)
	if err != nil {
		return err
	}
	if err := identity.Apply(gm, repoRoot, profile); err != nil {
		return err
	}
	notef("Using identity %s", profile)

	// Step 3: n8n workflow export, unless skipped. Skips are notices;
	// once an n8n service is detected, every export failure is fatal.
	if opts.SkipExport {
		notef("Skipping n8n workflow export (--skip-n8n-export)")
	} else {
		target, outcome, err := export.Detect(repoRoot)
		if err != nil {
			return err
		}
		if outcome.Skipped {
			notef("Skipping n8n workflow export: %s", outcome.Reason)
		} else {
			notef("Exporting n8n workflows from %s", outcome.ExportDir)
			if err := export.Run(ctx, repoRoot, target); err != nil {
				return err
			}
			notef("n8n workflows exported into %s", repoRoot)
		}
	}

	// Step 4: working-tree status, informational only. A status failure
	// never stops the run.
	if status, err := gm.Status(repoRoot); err == nil {
		notef("%s", strings.TrimRight(status, "\n"))
	}

	// Step 5: stage everything, deletions included.
	if err := gm.AddAll(repoRoot); err != nil {
		return err
	}

	// Step 6: staged summary, informational only.
	if summary, err := gm.StagedSummary(repoRoot); err == nil {
		if s := strings.TrimRight(summary, "\n"); s != "" {
			notef("%s", s)
		}
	}

	// Step 7: commit. A failure here usually means "nothing to commit";
	// by default the run continues so pre-existing local commits are
	// still pushed. --strict-commit flips the policy.
	if err := gm.Commit(repoRoot, message); err != nil {
		if opts.StrictCommit {
			return err
		}
		notef("Commit failed (continuing to push): %v", err)
	} else {
		notef("Committed: %s", message)
	}

	// Step 8: current branch. Empty means detached HEAD — fatal, a push
	// target is never assumed.
	branch, err := gm.CurrentBranch(repoRoot)
	if err != nil {
		return err
	}
	if branch == "" {
		return model.NewCLIError(model.ExitGitError,
			"cannot determine current branch (detached HEAD?) — check out a branch before pushing")
	}
	VerboseLog("current branch: %s", branch)

	// Step 9: push with escalating strategies, first success wins.
	won, err := gm.PushWithFallback(repoRoot, git.DefaultPushStrategies("origin", branch))
	if err != nil {
		return err
	}
	if won.Name != "plain" {
		notef("Pushed %s to origin (%s push)", branch, won.Name)
	} else {
		notef("Pushed %s to origin", branch)
	}

	return nil
}
