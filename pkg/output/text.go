package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// addressColumnWidth is the width the address column is padded to.
const addressColumnWidth = 20

// TextFormatter formats reports as human-readable console text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text. Styles are bound to w, so headings are
// only emphasised when w is a terminal.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)
	column := r.NewStyle().Width(addressColumnWidth)

	var b strings.Builder
	if f.opts.Quiet {
		f.formatQuiet(report, &b)
	} else {
		f.formatFull(report, &b, heading, column)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TextFormatter) formatQuiet(report *Report, b *strings.Builder) {
	fmt.Fprintf(b, "logtally: %d addresses, %d requests, top endpoint %s (%d), %d suspicious\n",
		report.Summary.Addresses,
		report.Summary.TotalRequests,
		report.TopEndpoint.Path,
		report.TopEndpoint.Count,
		report.Summary.SuspiciousAddresses)
}

func (f *TextFormatter) formatFull(report *Report, b *strings.Builder, heading, column lipgloss.Style) {
	fmt.Fprintln(b, heading.Render(pad(column, "IP Address:")+"Request Count"))
	for _, ac := range report.Requests {
		fmt.Fprintf(b, "%s%d\n", pad(column, ac.Address), ac.Count)
	}

	fmt.Fprintln(b)
	fmt.Fprintln(b, heading.Render("Most Frequently Accessed Endpoint:"))
	fmt.Fprintf(b, "%s (Accessed %d times)\n", report.TopEndpoint.Path, report.TopEndpoint.Count)

	if n := f.opts.TopEndpoints; n > 0 && len(report.Endpoints) > 0 {
		if n > len(report.Endpoints) {
			n = len(report.Endpoints)
		}
		fmt.Fprintln(b)
		fmt.Fprintln(b, heading.Render(fmt.Sprintf("Top %d Endpoints:", n)))
		for i, ec := range report.Endpoints[:n] {
			fmt.Fprintf(b, "%3d. %s (%d)\n", i+1, ec.Path, ec.Count)
		}
	}

	fmt.Fprintln(b)
	fmt.Fprintln(b, heading.Render("Suspicious Activity Detected:"))
	if !report.HasSuspicious() {
		fmt.Fprintln(b, "No suspicious activity detected.")
		return
	}
	for _, e := range report.Suspicious {
		fmt.Fprintf(b, "%s%d\n", pad(column, e.Address), e.Failures)
	}
}

// pad left-aligns s in the address column. Values as wide as the column are
// left as they are rather than wrapped.
func pad(column lipgloss.Style, s string) string {
	if lipgloss.Width(s) >= column.GetWidth() {
		return s
	}
	return column.Render(s)
}
