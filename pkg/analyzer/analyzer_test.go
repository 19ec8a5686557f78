package analyzer

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ccollicutt/logtally/pkg/config"
	"github.com/ccollicutt/logtally/pkg/parser"
)

func createTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return cfg
}

func TestNewAnalyzer(t *testing.T) {
	a, err := NewAnalyzer(createTestConfig(t))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}
	if a.Threshold() != config.DefaultFailureThreshold {
		t.Errorf("Threshold() = %d, want %d", a.Threshold(), config.DefaultFailureThreshold)
	}
}

func TestNewAnalyzer_UncompiledConfig(t *testing.T) {
	// Patterns are only compiled by Validate.
	if _, err := NewAnalyzer(config.DefaultConfig()); err == nil {
		t.Error("NewAnalyzer() expected error for unvalidated config")
	}
}

func TestNewAnalyzer_NegativeThreshold(t *testing.T) {
	if _, err := NewAnalyzer(createTestConfig(t), WithThreshold(-1)); err == nil {
		t.Error("NewAnalyzer() expected error for negative threshold")
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	var buf bytes.Buffer
	a, err := NewAnalyzer(createTestConfig(t),
		WithThreshold(1),
		WithLogger(log.New(&buf, "", 0)),
	)
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	result, err := a.Analyze(context.Background(), sampleLog)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.TopEndpoint != (EndpointCount{Path: "/home", Count: 3}) {
		t.Errorf("TopEndpoint = %+v", result.TopEndpoint)
	}
	if result.Endpoints[0] != result.TopEndpoint {
		t.Errorf("Endpoints[0] = %+v, want TopEndpoint", result.Endpoints[0])
	}
	if len(result.Requests) != 5 {
		t.Errorf("Requests = %d entries, want 5", len(result.Requests))
	}
	if result.TotalRequests() != 9 {
		t.Errorf("TotalRequests() = %d, want 9", result.TotalRequests())
	}
	if diff := cmp.Diff([]SuspiciousEntry{{"203.0.113.5", 2}}, result.Suspicious); diff != "" {
		t.Errorf("Suspicious mismatch (-want +got):\n%s", diff)
	}
	if !result.HasSuspicious() {
		t.Error("HasSuspicious() = false, want true")
	}

	md := result.Metadata
	if md.LinesProcessed != len(sampleLog) || md.Threshold != 1 {
		t.Errorf("Metadata = %+v", md)
	}
	if diff := cmp.Diff([]string{"test.log"}, md.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
	if md.EndTime.Before(md.StartTime) {
		t.Error("EndTime before StartTime")
	}

	if !strings.Contains(buf.String(), "analyzer: 5 addresses from 10 lines") {
		t.Errorf("missing log line, got:\n%s", buf.String())
	}
}

func TestAnalyzer_Analyze_EmptyInput(t *testing.T) {
	a, err := NewAnalyzer(createTestConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	result, err := a.Analyze(context.Background(), nil)
	if !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("Analyze() error = %v, want ErrEmptyResult", err)
	}
	if result != nil {
		t.Errorf("Analyze() result = %+v, want nil", result)
	}
}

func TestAnalyzer_Analyze_DefaultThreshold(t *testing.T) {
	a, err := NewAnalyzer(createTestConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	raw := append(repeat(`10.0.0.5 - - "POST /login" 401 Invalid credentials`, 11),
		repeat(`10.0.0.6 - - "POST /login" 401 Invalid credentials`, 10)...)
	result, err := a.Analyze(context.Background(), toLines(raw...))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]SuspiciousEntry{{"10.0.0.5", 11}}, result.Suspicious); diff != "" {
		t.Errorf("Suspicious mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzer_WithExtractor(t *testing.T) {
	a, err := NewAnalyzer(createTestConfig(t), WithExtractor(fieldExtractor{}), WithThreshold(0))
	if err != nil {
		t.Fatal(err)
	}

	result, err := a.Analyze(context.Background(), toLines("carol /z FAIL"))
	if err != nil {
		t.Fatal(err)
	}
	if result.TopEndpoint.Path != "/z" || len(result.Suspicious) != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestAnalyzer_Sources(t *testing.T) {
	lines := []parser.LogLine{
		{Content: `1.1.1.1 "GET /" 200`, Source: "b.log"},
		{Content: `1.1.1.1 "GET /" 200`, Source: "a.log"},
		{Content: `1.1.1.1 "GET /" 200`, Source: "b.log"},
	}
	if diff := cmp.Diff([]string{"b.log", "a.log"}, sources(lines)); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}
