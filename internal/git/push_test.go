package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/shipit/internal/model"
)

// scriptedRunner records every git invocation and fails any command whose
// joined argument string contains one of the failOn substrings. This lets
// push chain tests simulate a remote without network access.
type scriptedRunner struct {
	calls  [][]string
	failOn []string
}

func (r *scriptedRunner) Run(dir string, args ...string) (string, error) {
	r.calls = append(r.calls, args)
	joined := strings.Join(args, " ")
	for _, f := range r.failOn {
		if strings.Contains(joined, f) {
			return "", errors.New("simulated failure: " + joined)
		}
	}
	return "", nil
}

func TestDefaultPushStrategiesEscalate(t *testing.T) {
	strategies := DefaultPushStrategies("origin", "main")
	require.Len(t, strategies, 3)

	// Strictly increasing permissiveness: plain, then force, then
	// force without hook verification.
	assert.Equal(t, []string{"push", "-u", "origin", "main"}, strategies[0].Args)
	assert.Contains(t, strategies[1].Args, "--force")
	assert.NotContains(t, strategies[1].Args, "--no-verify")
	assert.Contains(t, strategies[2].Args, "--force")
	assert.Contains(t, strategies[2].Args, "--no-verify")
}

func TestPushWithFallbackPlainSucceeds(t *testing.T) {
	runner := &scriptedRunner{}
	m := NewManagerWithRunner(runner)

	won, err := m.PushWithFallback("/repo", DefaultPushStrategies("origin", "main"))
	require.NoError(t, err)
	assert.Equal(t, "plain", won.Name)
	assert.Len(t, runner.calls, 1, "later strategies must not run after a success")
}

func TestPushWithFallbackEscalatesToForce(t *testing.T) {
	// The plain push (no --force) fails; the forced push succeeds.
	runner := &scriptedRunner{failOn: []string{"push -u origin"}}
	m := NewManagerWithRunner(runner)

	won, err := m.PushWithFallback("/repo", DefaultPushStrategies("origin", "main"))
	require.NoError(t, err)
	assert.Equal(t, "force", won.Name)
	assert.Len(t, runner.calls, 2)
}

func TestPushWithFallbackExhausted(t *testing.T) {
	runner := &scriptedRunner{failOn: []string{"push"}}
	m := NewManagerWithRunner(runner)

	_, err := m.PushWithFallback("/repo", DefaultPushStrategies("origin", "main"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitPushExhausted, cliErr.Code)

	// The error should name every attempted strategy so the user can see
	// the chain ran to completion.
	assert.Contains(t, err.Error(), "plain")
	assert.Contains(t, err.Error(), "force-no-verify")
	assert.Len(t, runner.calls, 3, "each strategy is tried exactly once")
}

func TestPushWithFallbackNoStrategies(t *testing.T) {
	m := NewManagerWithRunner(&scriptedRunner{})
	_, err := m.PushWithFallback("/repo", nil)
	assert.Error(t, err)
}
