// Package identity selects the committer identity for a repository by
// matching its remote URL against an ordered list of pattern rules, and
// applies the winning profile at repository scope.
//
// The rule table defaults to compiled-in constants but can be replaced
// per-repository by a .shipit.jsonc (or .shipit.json) file at the repo
// root. There is deliberately no fallback identity: an unmatched remote
// is a hard error so commits are never attributed to the wrong account.
package identity
