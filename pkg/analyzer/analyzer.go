package analyzer

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/ccollicutt/logtally/pkg/config"
	"github.com/ccollicutt/logtally/pkg/parser"
)

// Analyzer runs the request, endpoint and failed-login passes over a log.
type Analyzer struct {
	extractor parser.Extractor
	threshold int
	logger    *log.Logger
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithThreshold overrides the configured failed-login threshold.
func WithThreshold(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.threshold = n
	}
}

// WithExtractor replaces the pattern extractor built from configuration.
func WithExtractor(ex parser.Extractor) AnalyzerOption {
	return func(a *Analyzer) {
		if ex != nil {
			a.extractor = ex
		}
	}
}

// WithLogger sends pass timings and counts to l.
func WithLogger(l *log.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer creates a new analyzer from a validated configuration.
func NewAnalyzer(cfg *config.Config, opts ...AnalyzerOption) (*Analyzer, error) {
	ex, err := cfg.NewExtractor()
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}

	a := &Analyzer{
		extractor: ex,
		threshold: cfg.FailureThreshold,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.threshold < 0 {
		return nil, fmt.Errorf("failure threshold must be >= 0, got %d", a.threshold)
	}

	return a, nil
}

// Threshold returns the failed-login threshold in effect.
func (a *Analyzer) Threshold() int {
	return a.threshold
}

// Analyze runs the three passes over lines in sequence. Each pass scans
// the full slice on its own and none of them modifies it. If no line
// carries an endpoint the run fails with an error wrapping ErrEmptyResult.
func (a *Analyzer) Analyze(ctx context.Context, lines []parser.LogLine) (*AnalysisResult, error) {
	result := &AnalysisResult{
		Metadata: AnalysisMetadata{
			Sources:        sources(lines),
			LinesProcessed: len(lines),
			Threshold:      a.threshold,
			StartTime:      time.Now(),
		},
	}

	start := time.Now()
	requests, err := CountRequests(ctx, lines, a.extractor)
	if err != nil {
		return nil, fmt.Errorf("counting requests: %w", err)
	}
	result.Requests = requests
	a.logger.Printf("analyzer: %d addresses from %d lines (%s)", len(requests), len(lines), time.Since(start).Round(time.Microsecond))

	start = time.Now()
	endpoints, err := RankEndpoints(ctx, lines, a.extractor)
	if err != nil {
		return nil, fmt.Errorf("identifying most accessed endpoint: %w", err)
	}
	result.Endpoints = endpoints
	result.TopEndpoint = endpoints[0]
	a.logger.Printf("analyzer: %d distinct endpoints (%s)", len(endpoints), time.Since(start).Round(time.Microsecond))

	start = time.Now()
	suspicious, err := DetectSuspicious(ctx, lines, a.extractor, a.threshold)
	if err != nil {
		return nil, fmt.Errorf("detecting suspicious activity: %w", err)
	}
	result.Suspicious = suspicious
	a.logger.Printf("analyzer: %d addresses over %d failed logins (%s)", len(suspicious), a.threshold, time.Since(start).Round(time.Microsecond))

	result.Metadata.EndTime = time.Now()
	return result, nil
}

// sources lists the distinct line sources in first-seen order.
func sources(lines []parser.LogLine) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lines {
		if !seen[l.Source] {
			seen[l.Source] = true
			out = append(out, l.Source)
		}
	}
	return out
}
