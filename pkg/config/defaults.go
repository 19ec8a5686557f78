package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ccollicutt/logtally/pkg/parser"
)

// Default values for configuration.
const (
	DefaultInput            = "sample.log"
	DefaultOutput           = "log_analysis_results.csv"
	DefaultFailureThreshold = 10
	DefaultWebhookTimeout   = 10 * time.Second
)

// Environment variable names.
const (
	EnvInput            = "LOGTALLY_INPUT"
	EnvOutput           = "LOGTALLY_OUTPUT"
	EnvFailureThreshold = "LOGTALLY_FAILURE_THRESHOLD"
)

// DefaultConfig returns a configuration matching the tool's built-in
// behaviour: read sample.log, write log_analysis_results.csv, flag
// addresses with more than 10 failed logins.
func DefaultConfig() *Config {
	return &Config{
		Input:            []string{DefaultInput},
		Output:           DefaultOutput,
		FailureThreshold: DefaultFailureThreshold,
		Extraction: ExtractionConfig{
			AddressPattern:  parser.DefaultAddressPattern,
			EndpointPattern: parser.DefaultEndpointPattern,
			FailureMarkers:  append([]string(nil), parser.DefaultFailureMarkers...),
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if input := os.Getenv(EnvInput); input != "" {
		c.Input = []string{input}
	}
	if out := os.Getenv(EnvOutput); out != "" {
		c.Output = out
	}
	if v := os.Getenv(EnvFailureThreshold); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFailureThreshold, err)
		}
		c.FailureThreshold = n
	}
	return nil
}

// NewExtractor builds the line extractor described by a validated config.
func (c *Config) NewExtractor() (*parser.PatternExtractor, error) {
	return parser.NewPatternExtractor(
		c.Extraction.CompiledAddressPattern(),
		c.Extraction.CompiledEndpointPattern(),
		c.Extraction.FailureMarkers,
	)
}
