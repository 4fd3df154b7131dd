package git

import (
	"fmt"
	"strings"

	"github.com/mmr-tortoise/shipit/internal/model"
)

// PushStrategy is one entry in the escalating push chain: a label for
// notices plus the exact argument list handed to git.
type PushStrategy struct {
	// Name identifies the strategy in notices and errors ("plain",
	// "force", "force-no-verify").
	Name string

	// Args is the full git argument list, including the branch.
	Args []string
}

// DefaultPushStrategies returns the push chain for a branch, ordered from
// least to most permissive:
//
//  1. plain push with upstream tracking
//  2. forced push
//  3. forced push with hooks disabled
//
// Every strategy sets upstream tracking (-u) so a later plain push needs
// no explicit target regardless of which rung succeeded.
func DefaultPushStrategies(remote, branch string) []PushStrategy {
	return []PushStrategy{
		{Name: "plain", Args: []string{"push", "-u", remote, branch}},
		{Name: "force", Args: []string{"push", "-u", "--force", remote, branch}},
		{Name: "force-no-verify", Args: []string{"push", "-u", "--force", "--no-verify", remote, branch}},
	}
}

// PushWithFallback tries each strategy in order and stops at the first
// success, returning the winning strategy. A failed strategy is never
// retried. When the whole chain is exhausted the error is a CLIError with
// ExitPushExhausted that names every attempted strategy and tells the user
// to push manually.
func (m *Manager) PushWithFallback(dir string, strategies []PushStrategy) (PushStrategy, error) {
	if len(strategies) == 0 {
		return PushStrategy{}, model.NewCLIError(model.ExitPushExhausted, "no push strategies configured")
	}

	var lastErr error
	attempted := make([]string, 0, len(strategies))

	for _, s := range strategies {
		attempted = append(attempted, s.Name)
		if _, err := m.runner.Run(dir, s.Args...); err != nil {
			lastErr = err
			continue
		}
		return s, nil
	}

	return PushStrategy{}, model.WrapCLIError(
		model.ExitPushExhausted,
		fmt.Sprintf("all push strategies failed (%s) — push manually and inspect the remote",
			strings.Join(attempted, ", ")),
		lastErr,
	)
}
