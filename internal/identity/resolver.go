package identity

import (
	"fmt"
	"strings"

	"github.com/mmr-tortoise/shipit/internal/git"
	"github.com/mmr-tortoise/shipit/internal/model"
)

// DefaultRules is the compiled-in rule table, evaluated in order: the
// personal profile is checked before the work profile. Each rule carries
// an SSH host alias, an owner-in-path segment, and an org/domain pattern.
var DefaultRules = []model.IdentityRule{
	{
		Patterns: []string{"github.com-personal", ":a19grey/", "/a19grey/"},
		Profile: model.IdentityProfile{
			Name:  "A19 Grey",
			Email: "a19grey@users.noreply.github.com",
		},
	},
	{
		Patterns: []string{"github.com-work", ":a19labs/", "a19labs.com"},
		Profile: model.IdentityProfile{
			Name:  "A19 Grey",
			Email: "agrey@a19labs.com",
		},
	},
}

// Resolve returns the profile of the first rule with any pattern that is
// a substring of remoteURL. Rules are checked in slice order and patterns
// in declaration order, so the caller controls priority entirely through
// ordering.
//
// No rule matching is fatal: the returned CLIError names the literal
// remote URL so the user can extend the rule table.
func Resolve(remoteURL string, rules []model.IdentityRule) (model.IdentityProfile, error) {
	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			if strings.Contains(remoteURL, pattern) {
				return rule.Profile, nil
			}
		}
	}

	return model.IdentityProfile{}, model.NewCLIError(
		model.ExitIdentityUnmatched,
		fmt.Sprintf("no identity profile matches remote %q — add a rule to .shipit.jsonc or use a recognized remote", remoteURL),
	)
}

// Apply writes the profile into the repository's local git configuration
// (user.name and user.email). The write is repo-scoped: `git config`
// without --global targets .git/config.
func Apply(m *git.Manager, repoRoot string, profile model.IdentityProfile) error {
	if err := m.SetConfig(repoRoot, "user.name", profile.Name); err != nil {
		return err
	}
	return m.SetConfig(repoRoot, "user.email", profile.Email)
}
