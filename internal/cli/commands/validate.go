package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logtally/pkg/config"
	"github.com/ccollicutt/logtally/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a logtally configuration file without running analysis.

Checks:
  - YAML syntax
  - Failure threshold range
  - Extraction pattern validity and capture groups
  - Webhook URLs and triggers
  - Input file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Input:             %d pattern(s)\n", len(cfg.Input))
	fmt.Fprintf(out, "  Output:            %s\n", cfg.Output)
	fmt.Fprintf(out, "  Failure threshold: %d\n", cfg.FailureThreshold)
	fmt.Fprintf(out, "  Webhooks:          %d\n", len(cfg.Webhooks))

	fmt.Fprintf(out, "\nExtraction:\n")
	fmt.Fprintf(out, "  address_pattern:  %s\n", cfg.Extraction.AddressPattern)
	fmt.Fprintf(out, "  endpoint_pattern: %s\n", cfg.Extraction.EndpointPattern)
	fmt.Fprintf(out, "  failure_markers:  %s\n", strings.Join(cfg.Extraction.FailureMarkers, ", "))

	// Check if inputs exist (warnings only)
	files, err := parser.ExpandGlobs(cfg.Input)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: Error expanding input patterns: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "\nLog files:\n")
	for _, f := range files {
		if parser.FileExists(f) {
			fmt.Fprintf(out, "  - %s\n", f)
		} else {
			fmt.Fprintf(out, "  - %s (Warning: not found)\n", f)
		}
	}

	return nil
}
