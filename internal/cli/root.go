// Package cli implements the outdated command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/outdated/internal/logger"
	"github.com/git-pkgs/outdated/internal/report"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitOutdated = 1 // outdated dependencies found and --fail-on-outdated set
	ExitUsage    = 2
	ExitFailure  = 3
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

func failure(err error) error {
	return &ExitError{Code: ExitFailure, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
// Errors without an explicit code come from cobra's argument and flag parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// NewRootCommand creates a fresh command tree so tests do not share state.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outdated",
		Short: "Find dependencies that have not been published in years",
		Long: `outdated looks up each dependency's maven-metadata.xml in one or more
Maven repositories and reports the ones whose last update is older than a
threshold.

Examples:
   outdated check org.apache.maven:maven-core junit:junit
   outdated check --pom pom.xml --threshold-years 2
   outdated check --catalog gradle/libs.versions.toml --repo google --repo central
   outdated repos`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "warn", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored log output")

	cmd.Version = Version
	cmd.SetVersionTemplate("outdated {{.Version}}\n")

	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newReposCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	code := ExitCode(err)
	if err != nil && err.Error() != "" && !isSilent(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return code
}

// isSilent reports whether err only carries an exit code.
func isSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Err == nil
}

// initializeLogger sets up the logger based on command flags.
func initializeLogger(cmd *cobra.Command) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:     logger.ParseLevel(levelStr),
		UseColor:  !noColor && !jsonLogs && !report.IsCI(),
		JSON:      jsonLogs,
		Component: "outdated",
	})
	logger.SetOutput(cmd.ErrOrStderr())
}
