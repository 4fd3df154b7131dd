// Package cli implements the shipit command line. shipit is a
// single-command tool: the root command itself runs the whole
// resolve-export-commit-push sequence, so there are no subcommands —
// only flags and the commit message.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/shipit/internal/git"
	"github.com/mmr-tortoise/shipit/internal/model"
)

// Flag variables bound to the root command.
var (
	// skipExport bypasses the n8n workflow export entirely.
	skipExport bool

	// strictCommit makes a failed `git commit` fatal. By default a commit
	// failure (typically "nothing to commit") is reported and the run
	// continues to push, so pre-existing local commits still go out.
	strictCommit bool

	// verbose enables extra diagnostics on stderr.
	verbose bool
)

// Version, Commit, and Date are injected from the main package at build
// time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates the shipit root command.
//
// Flag interspersion is disabled: flags are only recognized before the
// first positional argument. The first non-flag token begins the commit
// message and everything after it — flag-looking tokens included — is
// literal message text. That matches the usual shell "rest of the
// arguments as one string" semantics.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipit [flags] <commit message words...>",
		Short: "Export n8n workflows, then stage, commit, and push everything",
		Long: `shipit automates the save-and-push ritual for repositories carrying n8n
workflow definitions:

  1. resolves the committer identity from the origin remote URL
     (personal vs work, extensible via .shipit.jsonc)
  2. exports workflows from the running n8n Compose service into the
     repository (skipped when no compose file or n8n service exists)
  3. stages all changes, commits with the given message, and pushes,
     escalating from a plain push to --force to --force --no-verify

Examples:
  shipit fix workflow trigger
  shipit --skip-n8n-export "quick docs update"`,

		// Errors are formatted by Execute; cobra must not print them itself.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return model.NewCLIError(model.ExitUsage, "commit message is required")
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runShip(cmd.Context(), git.NewManager(), args, runOptions{
				SkipExport:   skipExport,
				StrictCommit: strictCommit,
			})
		},
	}

	// Cobra writes --version (and any other command output) to its out
	// stream, which defaults to stdout. stdout is reserved for the git and
	// docker child processes, so route cobra's own output to stderr.
	rootCmd.SetOut(os.Stderr)

	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().BoolVar(&skipExport, "skip-n8n-export", false, "Skip the n8n workflow export step")
	rootCmd.Flags().BoolVar(&strictCommit, "strict-commit", false, "Abort when git commit fails instead of continuing to push")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Help goes to stderr and exits nonzero: wrapper scripts must never
	// mistake help output for a completed commit, and stdout stays
	// reserved for the external tools shipit drives.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprint(os.Stderr, cmd.UsageString())
		os.Exit(int(model.ExitUsage))
	})

	// Unknown flags before the message are usage errors.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return model.WrapCLIError(model.ExitUsage, "invalid arguments", err)
	})

	return rootCmd
}

// Execute runs the root command and translates errors into exit codes.
// Usage errors additionally print the usage text, matching the behavior
// of the help flag.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", cliErr.Error())
			if cliErr.Code == model.ExitUsage {
				fmt.Fprint(os.Stderr, rootCmd.UsageString())
			}
			os.Exit(int(cliErr.Code))
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(model.ExitGeneralError))
	}
}

// notef prints a progress notice to stderr. shipit writes nothing to
// stdout itself; stdout belongs to the git and docker child processes.
func notef(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// VerboseLog prints a diagnostic message to stderr when --verbose is set.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
