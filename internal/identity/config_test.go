package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRulesFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadRulesMissingFileReturnsDefaults(t *testing.T) {
	rules, err := LoadRules(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultRules, rules)
}

func TestLoadRulesJSONCWithComments(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, ".shipit.jsonc", `{
  // personal account first: order is priority
  "profiles": [
    {
      "name": "Custom Personal",
      "email": "custom@example.com",
      "patterns": ["github.com-personal", ":custom/"],
    },
    {
      "name": "Custom Work",
      "email": "work@corp.example.com",
      "patterns": ["corp.example.com"]
    }
  ]
}`)

	rules, err := LoadRules(dir)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Custom Personal", rules[0].Profile.Name)
	assert.Equal(t, []string{"corp.example.com"}, rules[1].Patterns)

	// A file replaces the defaults wholesale.
	profile, err := Resolve("https://corp.example.com/team/repo.git", rules)
	require.NoError(t, err)
	assert.Equal(t, "Custom Work", profile.Name)
}

func TestLoadRulesPlainJSONFallback(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, ".shipit.json", `{
  "profiles": [
    {"name": "Only", "email": "only@example.com", "patterns": ["example"]}
  ]
}`)

	rules, err := LoadRules(dir)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Only", rules[0].Profile.Name)
}

func TestLoadRulesJsoncTakesPriorityOverJSON(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, ".shipit.jsonc", `{"profiles": [{"name": "C", "email": "c@example.com", "patterns": ["x"]}]}`)
	writeRulesFile(t, dir, ".shipit.json", `{"profiles": [{"name": "J", "email": "j@example.com", "patterns": ["x"]}]}`)

	rules, err := LoadRules(dir)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "C", rules[0].Profile.Name)
}

func TestLoadRulesMalformedFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, ".shipit.jsonc", `{"profiles": [`)

	_, err := LoadRules(dir)
	assert.Error(t, err, "a present but broken rules file must not fall back to defaults")
}

func TestLoadRulesEmptyProfilesIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, ".shipit.jsonc", `{"profiles": []}`)

	_, err := LoadRules(dir)
	assert.Error(t, err)
}

func TestLoadRulesInvalidRuleIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, ".shipit.jsonc", `{
  "profiles": [{"name": "No Patterns", "email": "n@example.com", "patterns": []}]
}`)

	_, err := LoadRules(dir)
	assert.Error(t, err)
}
