// Package webhook posts suspicious-activity alerts to HTTP endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ccollicutt/logtally/pkg/analyzer"
	"github.com/ccollicutt/logtally/pkg/output"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// EventSuspiciousActivity is the event name carried by every alert.
const EventSuspiciousActivity = "suspicious_activity"

// Alert is the JSON body posted to a webhook.
type Alert struct {
	Event       string                     `json:"event"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Sources     []string                   `json:"sources"`
	Threshold   int                        `json:"threshold"`
	Suspicious  []analyzer.SuspiciousEntry `json:"suspicious"`
	Summary     output.Summary             `json:"summary"`
}

// NewAlert builds an alert from a report.
func NewAlert(report *output.Report) *Alert {
	suspicious := report.Suspicious
	if suspicious == nil {
		suspicious = []analyzer.SuspiciousEntry{}
	}
	return &Alert{
		Event:       EventSuspiciousActivity,
		GeneratedAt: report.Metadata.AnalyzedAt,
		Sources:     report.Metadata.Sources,
		Threshold:   report.Summary.FailureThreshold,
		Suspicious:  suspicious,
		Summary:     report.Summary,
	}
}

// Client sends alerts to webhook endpoints.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new webhook client.
func NewClient(version string) *Client {
	return &Client{
		httpClient: &http.Client{},
		userAgent:  "logtally/" + version,
	}
}

// SendOptions configures a webhook request.
type SendOptions struct {
	URL     string
	Token   string        // Bearer token (optional)
	Timeout time.Duration // Request timeout (uses DefaultTimeout if zero)
}

// Response contains the result of a webhook request.
type Response struct {
	StatusCode int
	Duration   time.Duration
	Error      error
}

// Success returns true if the webhook was accepted (2xx status).
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts alert to a webhook endpoint. It never returns an error
// directly; failures are carried in the Response.
func (c *Client) Send(ctx context.Context, alert *Alert, opts SendOptions) *Response {
	start := time.Now()
	resp := &Response{}
	fail := func(err error) *Response {
		resp.Error = err
		resp.Duration = time.Since(start)
		return resp
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return fail(fmt.Errorf("marshaling alert: %w", err))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(payload))
	if err != nil {
		return fail(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("request failed: %w", err))
	}
	defer httpResp.Body.Close()

	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 64*1024))

	resp.StatusCode = httpResp.StatusCode
	resp.Duration = time.Since(start)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return resp
}
