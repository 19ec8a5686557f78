// Package analyzer computes the aggregate views of an access log: requests
// per address, the most accessed endpoint and suspicious login failures.
package analyzer

import (
	"errors"
	"time"
)

// ErrEmptyResult is returned when no line carries an endpoint, so the most
// accessed endpoint is undefined.
var ErrEmptyResult = errors.New("no endpoint found in log lines")

// AddressCount is the number of requests made from one source address.
type AddressCount struct {
	Address string `json:"address" yaml:"address"`
	Count   int    `json:"count" yaml:"count"`
}

// EndpointCount is the number of requests for one path.
type EndpointCount struct {
	Path  string `json:"path" yaml:"path"`
	Count int    `json:"count" yaml:"count"`
}

// SuspiciousEntry is an address whose failed logins exceed the threshold.
type SuspiciousEntry struct {
	Address  string `json:"address" yaml:"address"`
	Failures int    `json:"failures" yaml:"failures"`
}

// AnalysisResult contains the complete analysis output of one run.
type AnalysisResult struct {
	// Requests is sorted by count descending, ties in first-seen order.
	Requests []AddressCount

	// TopEndpoint is the most accessed path.
	TopEndpoint EndpointCount

	// Endpoints is the full path ranking, TopEndpoint first.
	Endpoints []EndpointCount

	// Suspicious is ordered by each address's first failure.
	Suspicious []SuspiciousEntry

	Metadata AnalysisMetadata
}

// AnalysisMetadata provides context about the analysis run.
type AnalysisMetadata struct {
	// Sources lists the log files that contributed lines, in read order.
	Sources []string

	// LinesProcessed is the total number of log lines examined.
	LinesProcessed int

	// Threshold is the failed-login threshold that was applied.
	Threshold int

	StartTime time.Time
	EndTime   time.Time
}

// HasSuspicious returns true if any address exceeded the failure threshold.
func (r *AnalysisResult) HasSuspicious() bool {
	return len(r.Suspicious) > 0
}

// TotalRequests returns the number of lines attributed to an address.
func (r *AnalysisResult) TotalRequests() int {
	total := 0
	for _, ac := range r.Requests {
		total += ac.Count
	}
	return total
}
