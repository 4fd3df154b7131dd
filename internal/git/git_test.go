package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary directory with an initialized Git
// repository containing a single commit. A local user identity is
// configured so commits work in CI environments without global git config.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# Test Repo\n"), 0644))

	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// runTestGit runs a git command in dir and fails the test on a non-zero
// exit, keeping setup code free of repetitive error checks.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

func TestRepoRoot(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	// Resolve from a subdirectory to verify we get the top level back.
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))

	root, err := m.RepoRoot(sub)
	require.NoError(t, err)

	// macOS resolves /tmp through a symlink, so compare resolved paths.
	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestRepoRootOutsideRepository(t *testing.T) {
	m := NewManager()
	_, err := m.RepoRoot(t.TempDir())
	assert.Error(t, err, "RepoRoot must fail outside a repository")
}

func TestRemoteURL(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	runTestGit(t, dir, "remote", "add", "origin", "git@github.com-personal:a19grey/demo.git")

	url, err := m.RemoteURL(dir, "origin")
	require.NoError(t, err)
	assert.Equal(t, "git@github.com-personal:a19grey/demo.git", url)
}

func TestRemoteURLMissingRemote(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	_, err := m.RemoteURL(dir, "origin")
	assert.Error(t, err, "a repository without origin must surface an error")
}

func TestCurrentBranch(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	branch, err := m.CurrentBranch(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, branch)
}

func TestCurrentBranchDetachedHead(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	head := strings.TrimSpace(runTestGit(t, dir, "rev-parse", "HEAD"))
	runTestGit(t, dir, "checkout", "--detach", head)

	branch, err := m.CurrentBranch(dir)
	require.NoError(t, err)
	assert.Empty(t, branch, "detached HEAD must yield an empty branch name, not a default")
}

func TestSetConfigIsRepoScoped(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	require.NoError(t, m.SetConfig(dir, "user.name", "Shipit Test"))
	require.NoError(t, m.SetConfig(dir, "user.email", "shipit@example.com"))

	// The value must come back with --local to prove it landed in
	// .git/config and not in any broader scope.
	got := strings.TrimSpace(runTestGit(t, dir, "config", "--local", "user.name"))
	assert.Equal(t, "Shipit Test", got)
}

func TestAddAllAndCommit(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	// A new file, a modification, and a deletion — add -A must stage all three.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("new\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Changed\n"), 0644))
	require.NoError(t, os.Remove(filepath.Join(dir, "README.md")))

	require.NoError(t, m.AddAll(dir))

	summary, err := m.StagedSummary(dir)
	require.NoError(t, err)
	assert.Contains(t, summary, "new.txt")
	assert.Contains(t, summary, "README.md")

	require.NoError(t, m.Commit(dir, "stage everything"))

	subject := strings.TrimSpace(runTestGit(t, dir, "log", "-1", "--pretty=%s"))
	assert.Equal(t, "stage everything", subject)
}

func TestCommitNothingToCommitFails(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	// Clean tree: git commit exits non-zero. The orchestrator relies on
	// getting an error here and deciding policy itself.
	err := m.Commit(dir, "empty")
	assert.Error(t, err)
}

func TestStatusIsInformational(t *testing.T) {
	dir := setupTestRepo(t)
	m := NewManager()

	out, err := m.Status(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
