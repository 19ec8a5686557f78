package output

import (
	"time"

	"github.com/ccollicutt/logtally/pkg/analyzer"
)

func createTestReport() *Report {
	start := time.Date(2024, 12, 3, 10, 0, 0, 0, time.UTC)
	return NewReport(&analyzer.AnalysisResult{
		Requests: []analyzer.AddressCount{
			{Address: "192.168.1.1", Count: 3},
			{Address: "203.0.113.5", Count: 2},
		},
		TopEndpoint: analyzer.EndpointCount{Path: "/home", Count: 3},
		Endpoints: []analyzer.EndpointCount{
			{Path: "/home", Count: 3},
			{Path: "/login", Count: 2},
		},
		Suspicious: []analyzer.SuspiciousEntry{
			{Address: "203.0.113.5", Failures: 12},
		},
		Metadata: analyzer.AnalysisMetadata{
			Sources:        []string{"sample.log"},
			LinesProcessed: 6,
			Threshold:      10,
			StartTime:      start,
			EndTime:        start.Add(1500 * time.Millisecond),
		},
	})
}

func createCleanReport() *Report {
	r := createTestReport()
	r.Suspicious = []analyzer.SuspiciousEntry{}
	r.Summary.SuspiciousAddresses = 0
	return r
}
