// Package output renders analysis results for the console and writes the
// CSV report file.
package output

import (
	"time"

	"github.com/ccollicutt/logtally/pkg/analyzer"
)

// Report is the complete analysis output.
type Report struct {
	Summary Summary `json:"summary" yaml:"summary"`

	// Requests is the full per-address request list, most active first.
	Requests []analyzer.AddressCount `json:"requests" yaml:"requests"`

	// TopEndpoint is the most accessed path.
	TopEndpoint analyzer.EndpointCount `json:"top_endpoint" yaml:"top_endpoint"`

	// Endpoints is the full path ranking.
	Endpoints []analyzer.EndpointCount `json:"endpoints" yaml:"endpoints"`

	// Suspicious lists addresses over the failed-login threshold.
	Suspicious []analyzer.SuspiciousEntry `json:"suspicious" yaml:"suspicious"`

	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	Addresses           int `json:"addresses" yaml:"addresses"`
	TotalRequests       int `json:"total_requests" yaml:"total_requests"`
	DistinctEndpoints   int `json:"distinct_endpoints" yaml:"distinct_endpoints"`
	SuspiciousAddresses int `json:"suspicious_addresses" yaml:"suspicious_addresses"`
	LinesProcessed      int `json:"lines_processed" yaml:"lines_processed"`
	FailureThreshold    int `json:"failure_threshold" yaml:"failure_threshold"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Sources lists the log files that were analyzed.
	Sources []string `json:"sources" yaml:"sources"`

	// AnalyzedAt is when the analysis finished. Wall-clock values are kept
	// out of the encoded report.
	AnalyzedAt time.Time `json:"-" yaml:"-"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"-" yaml:"-"`
}

// NewReport creates a Report from analysis results.
func NewReport(result *analyzer.AnalysisResult) *Report {
	return &Report{
		Requests:    result.Requests,
		TopEndpoint: result.TopEndpoint,
		Endpoints:   result.Endpoints,
		Suspicious:  result.Suspicious,
		Summary: Summary{
			Addresses:           len(result.Requests),
			TotalRequests:       result.TotalRequests(),
			DistinctEndpoints:   len(result.Endpoints),
			SuspiciousAddresses: len(result.Suspicious),
			LinesProcessed:      result.Metadata.LinesProcessed,
			FailureThreshold:    result.Metadata.Threshold,
		},
		Metadata: Metadata{
			Sources:    result.Metadata.Sources,
			AnalyzedAt: result.Metadata.EndTime,
			Duration:   result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
	}
}

// HasSuspicious returns true if any address exceeded the failure threshold.
func (r *Report) HasSuspicious() bool {
	return r.Summary.SuspiciousAddresses > 0
}
