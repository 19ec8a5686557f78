package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. An empty path yields the
// default configuration, still subject to environment overrides.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles regex patterns.
func Validate(cfg *Config) error {
	if len(cfg.Input) == 0 {
		return errors.New("input: at least one log file is required")
	}
	for i, in := range cfg.Input {
		if strings.TrimSpace(in) == "" {
			return fmt.Errorf("input[%d]: path is empty", i)
		}
	}

	if cfg.Output == "" {
		return errors.New("output: report path is required")
	}

	if cfg.FailureThreshold < 0 {
		return fmt.Errorf("failure_threshold: must be >= 0, got %d", cfg.FailureThreshold)
	}

	if err := validateExtraction(&cfg.Extraction); err != nil {
		return fmt.Errorf("extraction: %w", err)
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateExtraction(ex *ExtractionConfig) error {
	re, err := compileWithGroup(ex.AddressPattern)
	if err != nil {
		return fmt.Errorf("address_pattern: %w", err)
	}
	ex.compiledAddress = re

	re, err = compileWithGroup(ex.EndpointPattern)
	if err != nil {
		return fmt.Errorf("endpoint_pattern: %w", err)
	}
	ex.compiledEndpoint = re

	if len(ex.FailureMarkers) == 0 {
		return errors.New("failure_markers: at least one marker is required")
	}
	for i, m := range ex.FailureMarkers {
		if m == "" {
			return fmt.Errorf("failure_markers[%d]: marker is empty", i)
		}
	}

	return nil
}

func compileWithGroup(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errors.New("pattern is required")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, errors.New("pattern must have at least one capture group")
	}
	return re, nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case "":
		wh.Trigger = WebhookTriggerOnSuspicious
	case WebhookTriggerOnSuspicious, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_suspicious, always, or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar resolves a token given as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	switch {
	case strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}"):
		return os.Getenv(s[2 : len(s)-1])
	case strings.HasPrefix(s, "$"):
		return os.Getenv(s[1:])
	default:
		return s
	}
}
