// Package cli provides the command-line interface for logtally.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logtally/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command. Run without a subcommand
// it analyzes the configured input exactly like "logtally analyze".
func NewRootCommand() *cobra.Command {
	rootCmd := commands.NewAnalyzeCommand()
	rootCmd.Use = "logtally"
	rootCmd.Short = "Summarize web server access logs"
	rootCmd.Long = `logtally is a batch access-log analyzer.

It reports:
  - Request counts per source address
  - The most frequently accessed endpoint
  - Addresses with repeated failed logins (possible brute force)

Results are printed to the console and saved as a CSV report.

With no subcommand logtally reads sample.log, writes
log_analysis_results.csv and flags addresses with more than 10 failed
logins. Use "logtally analyze" to pass log files explicitly.`
	rootCmd.Args = cobra.NoArgs
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
