package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/logtally/pkg/config"
	"github.com/ccollicutt/logtally/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Check which access-log layout a file uses",
		Long: `Sample a log file and report how well each known access-log layout
reads it: how many lines yield a source address, a request path, or a
failed-login marker.

Prints a ready-to-use extraction snippet for the best layout and can
write a starter config file with --write-config.

Supports:
  - Common/Combined log format (IPv4 and IPv6 clients)
  - key=value logs (client=..., path=...)
  - JSON lines (remote_addr, path)

Example:
  logtally detect /var/log/nginx/access.log
  logtally detect --sample 500 /var/log/large.log
  logtally detect --write-config logtally.yaml /var/log/nginx/access.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matching layouts, not just the best one")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(out, result, logFile, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(out, result, logFile, opts)
	default:
		return outputDetectText(out, result, logFile, opts)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Access Log Layout Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", logFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No known access-log layout detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: Set extraction.address_pattern and extraction.endpoint_pattern")
		fmt.Fprintln(w, "in a config file; each needs one capture group.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Layout: %s\n", best.Profile.Name)
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines with address and endpoint)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintf(w, "  Address matches:  %d\n", best.AddressMatches)
	fmt.Fprintf(w, "  Endpoint matches: %d\n", best.EndpointMatches)
	fmt.Fprintf(w, "  Failure lines:    %d\n", best.FailureLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample match:\n  %s\n", best.SampleLine)
	fmt.Fprintf(w, "Extracted: address=%s endpoint=%s\n", best.SampleAddress, best.SampleEndpoint)
	fmt.Fprintln(w)

	if best.UnmatchedLine != "" {
		fmt.Fprintf(w, "Example of a skipped line:\n  %s\n", best.UnmatchedLine)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "extraction:")
	fmt.Fprintf(w, "  address_pattern: '%s'\n", best.Profile.AddressPattern)
	fmt.Fprintf(w, "  endpoint_pattern: '%s'\n", best.Profile.EndpointPattern)
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative layouts ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s (%.1f%% confidence)\n", i+2, m.Profile.Name, m.Confidence*100)
			fmt.Fprintf(w, "   address_pattern: '%s'\n", m.Profile.AddressPattern)
			fmt.Fprintf(w, "   endpoint_pattern: '%s'\n", m.Profile.EndpointPattern)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a layout match in JSON output.
type JSONMatch struct {
	Name            string  `json:"name"`
	AddressPattern  string  `json:"address_pattern"`
	EndpointPattern string  `json:"endpoint_pattern"`
	Confidence      float64 `json:"confidence"`
	MatchCount      int     `json:"match_count"`
	AddressMatches  int     `json:"address_matches"`
	EndpointMatches int     `json:"endpoint_matches"`
	FailureLines    int     `json:"failure_lines"`
	SampleLine      string  `json:"sample_line,omitempty"`
	UnmatchedLine   string  `json:"unmatched_line,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File         string      `json:"file"`
	Matches      []JSONMatch `json:"matches"`
	SampledLines int         `json:"sampled_lines"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	out := JSONOutput{
		File:         logFile,
		SampledLines: result.SampledLines,
		Matches:      make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:            m.Profile.Name,
			AddressPattern:  m.Profile.AddressPattern,
			EndpointPattern: m.Profile.EndpointPattern,
			Confidence:      m.Confidence,
			MatchCount:      m.MatchCount,
			AddressMatches:  m.AddressMatches,
			EndpointMatches: m.EndpointMatches,
			FailureLines:    m.FailureLines,
			SampleLine:      m.SampleLine,
			UnmatchedLine:   m.UnmatchedLine,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig writes a config file using the best detected layout.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, logFile, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no access-log layout detected")
	}

	data, err := generateStarterConfig(logFile, result.BestMatch())
	if err != nil {
		return err
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig renders a default config pointed at logFile with
// the matched layout's extraction patterns.
func generateStarterConfig(logFile string, match *detector.ProfileMatch) ([]byte, error) {
	absLogFile := logFile
	if abs, err := filepath.Abs(logFile); err == nil {
		absLogFile = abs
	}

	cfg := config.DefaultConfig()
	cfg.Input = []string{absLogFile}
	cfg.Extraction.AddressPattern = match.Profile.AddressPattern
	cfg.Extraction.EndpointPattern = match.Profile.EndpointPattern

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}

	header := fmt.Sprintf("# logtally configuration\n# Generated by: logtally detect\n# Detected layout: %s (%.0f%% confidence)\n\n",
		match.Profile.Name, match.Confidence*100)
	return append([]byte(header), body...), nil
}
