package model

import (
	"fmt"
	"net/mail"
	"strings"
)

// IdentityProfile is a committer identity (user.name / user.email pair)
// applied at repository scope once the remote URL has been matched.
type IdentityProfile struct {
	// Name is the display name written to user.name.
	Name string `json:"name"`

	// Email is the address written to user.email.
	Email string `json:"email"`
}

// String returns the conventional "Name <email>" rendering.
func (p IdentityProfile) String() string {
	return fmt.Sprintf("%s <%s>", p.Name, p.Email)
}

// Validate checks that the profile carries a usable name and a
// syntactically valid email address.
func (p IdentityProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("identity profile: name must not be empty")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return fmt.Errorf("identity profile %q: invalid email %q: %w", p.Name, p.Email, err)
	}
	return nil
}

// IdentityRule pairs a profile with the substring patterns that select it.
// Rules are evaluated in order against the remote URL; the first rule with
// any matching pattern wins. Typical patterns for one profile are an SSH
// host alias (e.g. "github.com-personal"), an owner segment in the path,
// and an organization domain.
type IdentityRule struct {
	// Patterns are plain substrings matched against the remote URL.
	// Any single match selects the rule.
	Patterns []string `json:"patterns"`

	// Profile is the identity applied when this rule matches.
	Profile IdentityProfile `json:"profile"`
}

// Validate checks that the rule has at least one non-empty pattern and a
// valid profile.
func (r IdentityRule) Validate() error {
	if len(r.Patterns) == 0 {
		return fmt.Errorf("identity rule for %s: at least one pattern is required", r.Profile)
	}
	for _, p := range r.Patterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("identity rule for %s: empty pattern", r.Profile)
		}
	}
	return r.Profile.Validate()
}

// ExportOutcome describes what the workflow exporter did on this run.
// It exists so the orchestrator can report a precise notice without the
// exporter writing orchestration-level output itself.
type ExportOutcome struct {
	// Skipped is true when the exporter did not run (flag set, no compose
	// file, or no n8n service declared). Reason explains which.
	Skipped bool `json:"skipped"`

	// Reason is a short human-readable explanation for a skip.
	Reason string `json:"reason,omitempty"`

	// MountPath is the container-side volume mount discovered for the n8n
	// service (e.g. "/home/node/.n8n"). Empty when skipped.
	MountPath string `json:"mountPath,omitempty"`

	// ExportDir is the derived in-container export directory, always the
	// mount path plus "/exported_workflows/". Empty when skipped.
	ExportDir string `json:"exportDir,omitempty"`
}

// ExitCode defines the shipit process exit codes. Zero is success; every
// failure class gets its own nonzero code so wrapper scripts can tell a
// usage mistake from an exhausted push chain.
type ExitCode int

const (
	// ExitSuccess indicates the full sequence completed.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unclassified error.
	ExitGeneralError ExitCode = 1

	// ExitUsage indicates bad or missing arguments (including --help,
	// which deliberately exits nonzero: no commit happened).
	ExitUsage ExitCode = 2

	// ExitNotARepository indicates the working directory is not inside a
	// Git repository, or the repository has no origin remote.
	ExitNotARepository ExitCode = 3

	// ExitIdentityUnmatched indicates no identity rule matched the remote.
	ExitIdentityUnmatched ExitCode = 4

	// ExitDockerUnavailable indicates the docker CLI or daemon is missing
	// while the n8n service is declared — a hard dependency at that point.
	ExitDockerUnavailable ExitCode = 5

	// ExitExportFailed indicates the workflow export or the copy back to
	// the host failed, or the compose file declared n8n without a usable
	// volume mount.
	ExitExportFailed ExitCode = 6

	// ExitGitError indicates a fatal Git operation failure (staging,
	// branch resolution, or a commit failure under --strict-commit).
	ExitGitError ExitCode = 7

	// ExitPushExhausted indicates every push strategy failed.
	ExitPushExhausted ExitCode = 8
)

// CLIError is an error carrying the exit code the process should return.
// The cli layer unwraps it in Execute to translate domain failures into
// exit codes without sprinkling os.Exit through the codebase.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
