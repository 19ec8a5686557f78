package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as a single indented JSON document.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the report as JSON. In quiet mode only the summary object
// is written.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(documentFor(report, f.opts))
}

// documentFor picks what the structured formatters encode. Metadata
// carries no wall-clock fields, so repeated runs over the same input
// produce the same document.
func documentFor(report *Report, opts FormatOptions) any {
	if opts.Quiet {
		return report.Summary
	}
	return report
}
