package commands

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logtally/pkg/analyzer"
	"github.com/ccollicutt/logtally/pkg/config"
	"github.com/ccollicutt/logtally/pkg/output"
	"github.com/ccollicutt/logtally/pkg/parser"
	"github.com/ccollicutt/logtally/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigPath       string
	Output           string
	Threshold        int
	Format           string
	TopEndpoints     int
	Quiet            bool
	Verbose          bool
	FailOnSuspicious bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [log-file...]",
		Short: "Count requests and flag suspicious addresses",
		Long: `Analyze web server access logs.

Reports:
  - Requests per source address, busiest first
  - The most frequently accessed endpoint
  - Addresses with more failed logins than the threshold

Results are printed and saved as a CSV report. Log files given as
arguments (paths or globs) replace the input list from the configuration.

Exit codes:
  0 - Analysis completed
  1 - Suspicious activity detected (with --fail-on-suspicious)
  2 - Configuration or runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	addAnalyzeFlags(cmd, opts)
	return cmd
}

// addAnalyzeFlags registers the analyze flags on cmd. The root command
// shares them so that a bare invocation behaves like analyze.
func addAnalyzeFlags(cmd *cobra.Command, opts *AnalyzeOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "CSV report path")
	cmd.Flags().IntVar(&opts.Threshold, "threshold", config.DefaultFailureThreshold, "Failed logins an address must exceed to be flagged")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Console format (text|json|yaml|csv)")
	cmd.Flags().IntVar(&opts.TopEndpoints, "top", 0, "Also list the N most accessed endpoints")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log progress to stderr")
	cmd.Flags().BoolVar(&opts.FailOnSuspicious, "fail-on-suspicious", false, "Exit 1 when suspicious activity is detected")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnSuspicious), "When to fire webhook (on_suspicious|always|never)")
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadAnalyzeConfig(ctx, cmd, args, opts)
	if err != nil {
		return err
	}

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if opts.Verbose {
		logger = log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	}

	lines, err := parser.NewLoader(parser.WithLogger(logger)).Load(ctx, cfg.Input)
	if err != nil {
		return fmt.Errorf("loading logs: %w", err)
	}

	a, err := analyzer.NewAnalyzer(cfg, analyzer.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	result, err := a.Analyze(ctx, lines)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(result)

	stdout := cmd.OutOrStdout()
	if err := formatter.Format(ctx, report, stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if err := output.WriteReportFile(ctx, cfg.Output, report); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	switch {
	case opts.Quiet:
	case formatter.Name() == "text":
		fmt.Fprintf(stdout, "\nResults saved to %s\n", cfg.Output)
	default:
		// Keep machine-readable stdout clean.
		fmt.Fprintf(cmd.ErrOrStderr(), "Results saved to %s\n", cfg.Output)
	}

	// Send webhooks (errors logged but don't fail analysis)
	sendWebhooks(ctx, cmd.ErrOrStderr(), cfg, opts, report)

	if opts.FailOnSuspicious && report.HasSuspicious() {
		ExitCode = 1
	}

	return nil
}

// loadAnalyzeConfig loads the configuration and applies command-line
// overrides, which take precedence over both the file and the environment.
func loadAnalyzeConfig(ctx context.Context, cmd *cobra.Command, args []string, opts *AnalyzeOptions) (*config.Config, error) {
	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	overridden := false
	if len(args) > 0 {
		cfg.Input = args
		overridden = true
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = opts.Output
		overridden = true
	}
	if cmd.Flags().Changed("threshold") {
		cfg.FailureThreshold = opts.Threshold
		overridden = true
	}

	if overridden {
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid options: %w", err)
		}
	}

	return cfg, nil
}

func createFormatter(opts *AnalyzeOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Quiet:        opts.Quiet,
		TopEndpoints: opts.TopEndpoints,
	}

	switch opts.Format {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	case "yaml":
		return output.NewYAMLFormatter(formatOpts), nil
	case "csv":
		return output.NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, yaml or csv)", opts.Format)
	}
}

// sendWebhooks sends a suspicious-activity alert to all configured webhooks.
// Errors are logged to w but don't fail the analysis.
func sendWebhooks(ctx context.Context, w io.Writer, cfg *config.Config, opts *AnalyzeOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient(Version)
	alert := webhook.NewAlert(report)

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasSuspicious()) {
			continue
		}

		resp := client.Send(ctx, alert, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(w, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(w, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with CLI webhook.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnSuspicious
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger
// and whether any address was flagged.
func shouldFireWebhook(trigger config.WebhookTrigger, hasSuspicious bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasSuspicious
	}
}
