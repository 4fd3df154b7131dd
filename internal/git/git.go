package git

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/shipit/internal/model"
)

// Runner executes a git command in a directory and returns its stdout.
// It exists as a seam so the push fallback chain can be tested without a
// remote; production code always uses ExecRunner.
type Runner interface {
	Run(dir string, args ...string) (string, error)
}

// ExecRunner is the default Runner backed by os/exec. Commands run as
// `git -C <dir> <args...>`: the -C flag is handled by git itself and works
// with every subcommand, so the process never has to chdir.
type ExecRunner struct{}

// Run implements Runner. On success it returns stdout. On failure the
// error is a model.CLIError with ExitGitError carrying the command line
// and trimmed stderr, which is usually the only diagnostic git prints.
func (ExecRunner) Run(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if s := strings.TrimSpace(stderr.String()); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}

// Manager provides the Git operations used by the shipit run. All methods
// take the repository directory explicitly; the Manager itself holds no
// per-repository state.
type Manager struct {
	runner Runner
}

// NewManager creates a Manager backed by the real git binary.
func NewManager() *Manager {
	return &Manager{runner: ExecRunner{}}
}

// NewManagerWithRunner creates a Manager with a custom Runner.
// Used by tests to substitute a scripted runner.
func NewManagerWithRunner(r Runner) *Manager {
	return &Manager{runner: r}
}

// RepoRoot returns the top-level directory of the repository containing
// path, via `git rev-parse --show-toplevel`.
func (m *Manager) RepoRoot(path string) (string, error) {
	out, err := m.runner.Run(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RemoteURL returns the fetch URL of the named remote (normally "origin").
// The error from a missing remote carries git's own "No such remote"
// message via the Runner.
func (m *Manager) RemoteURL(dir, remote string) (string, error) {
	out, err := m.runner.Run(dir, "remote", "get-url", remote)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the current branch name via
// `git branch --show-current`. The result is empty on a detached HEAD —
// callers must treat that as fatal rather than invent a branch name.
func (m *Manager) CurrentBranch(dir string) (string, error) {
	out, err := m.runner.Run(dir, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// SetConfig writes a configuration key at repository scope. Without
// --global or --system, `git config` writes to .git/config, which is
// exactly the scoping the identity resolver requires.
func (m *Manager) SetConfig(dir, key, value string) error {
	_, err := m.runner.Run(dir, "config", key, value)
	return err
}

// Status returns `git status` output for informational display.
func (m *Manager) Status(dir string) (string, error) {
	return m.runner.Run(dir, "status")
}

// AddAll stages every working-tree change, including deletions.
func (m *Manager) AddAll(dir string) error {
	_, err := m.runner.Run(dir, "add", "-A")
	return err
}

// StagedSummary returns a diffstat of what is staged for commit.
func (m *Manager) StagedSummary(dir string) (string, error) {
	return m.runner.Run(dir, "diff", "--cached", "--stat")
}

// Commit records the staged changes with the given message. A failure here
// commonly means "nothing to commit"; the caller decides whether that is
// fatal (see the --strict-commit flag).
func (m *Manager) Commit(dir, message string) error {
	_, err := m.runner.Run(dir, "commit", "-m", message)
	return err
}
