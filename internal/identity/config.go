package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/shipit/internal/model"
)

// rulesFile is the on-disk shape of a .shipit.jsonc rule table.
type rulesFile struct {
	// Profiles replaces the default rule table when present. Order in the
	// file is match priority.
	Profiles []ruleEntry `json:"profiles"`
}

// ruleEntry flattens model.IdentityRule for a friendlier file format:
// name/email sit next to the patterns instead of in a nested object.
type ruleEntry struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Patterns []string `json:"patterns"`
}

// configCandidates are the recognized rule file names at the repository
// root, in priority order.
var configCandidates = []string{".shipit.jsonc", ".shipit.json"}

// LoadRules returns the identity rule table for a repository. If a
// .shipit.jsonc/.shipit.json file exists at repoRoot it replaces the
// compiled-in defaults entirely; otherwise DefaultRules is returned.
//
// The file may contain JSONC comments and trailing commas — they are
// stripped with tidwall/jsonc before parsing. A file that is present but
// malformed or empty is a fatal configuration error, never silently
// ignored: a half-read rule table could attribute commits to the wrong
// identity.
func LoadRules(repoRoot string) ([]model.IdentityRule, error) {
	path, ok := findRulesFile(repoRoot)
	if !ok {
		return DefaultRules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to read identity rules from %s", path),
			err,
		)
	}

	var file rulesFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to parse identity rules in %s", path),
			err,
		)
	}

	if len(file.Profiles) == 0 {
		return nil, model.NewCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("%s declares no profiles — remove the file to use the built-in rules", path),
		)
	}

	rules := make([]model.IdentityRule, 0, len(file.Profiles))
	for _, entry := range file.Profiles {
		rule := model.IdentityRule{
			Patterns: entry.Patterns,
			Profile:  model.IdentityProfile{Name: entry.Name, Email: entry.Email},
		}
		if err := rule.Validate(); err != nil {
			return nil, model.WrapCLIError(
				model.ExitGeneralError,
				fmt.Sprintf("invalid identity rule in %s", path),
				err,
			)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// findRulesFile returns the first existing rule file at the repo root.
func findRulesFile(repoRoot string) (string, bool) {
	for _, name := range configCandidates {
		path := filepath.Join(repoRoot, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
