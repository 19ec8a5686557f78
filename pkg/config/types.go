// Package config provides configuration loading and validation for logtally.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Input lists the log files or glob patterns to analyze.
	Input []string `yaml:"input"`

	// Output is the path of the CSV report file.
	Output string `yaml:"output"`

	// FailureThreshold is the number of failed logins an address must
	// exceed to be reported as suspicious.
	FailureThreshold int `yaml:"failure_threshold"`

	// Extraction controls how addresses, paths and failures are found.
	Extraction ExtractionConfig `yaml:"extraction"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ExtractionConfig defines the patterns used to pull tokens from log lines.
type ExtractionConfig struct {
	// AddressPattern captures the source address in its first group.
	AddressPattern string `yaml:"address_pattern"`

	// EndpointPattern captures the request path in its first group.
	EndpointPattern string `yaml:"endpoint_pattern"`

	// FailureMarkers are case-sensitive substrings that flag a failed login.
	FailureMarkers []string `yaml:"failure_markers"`

	compiledAddress  *regexp.Regexp
	compiledEndpoint *regexp.Regexp
}

// CompiledAddressPattern returns the compiled address pattern.
func (e *ExtractionConfig) CompiledAddressPattern() *regexp.Regexp {
	return e.compiledAddress
}

// CompiledEndpointPattern returns the compiled endpoint pattern.
func (e *ExtractionConfig) CompiledEndpointPattern() *regexp.Regexp {
	return e.compiledEndpoint
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnSuspicious fires only when suspicious addresses are found (default).
	WebhookTriggerOnSuspicious WebhookTrigger = "on_suspicious"
	// WebhookTriggerAlways fires after every analysis.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines an endpoint that receives suspicious-activity alerts.
type WebhookConfig struct {
	Name    string         `yaml:"name,omitempty"`
	URL     string         `yaml:"url"`
	Token   string         `yaml:"token,omitempty"`
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`
	Timeout time.Duration  `yaml:"timeout,omitempty"`
}
