package output

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/ccollicutt/logtally/pkg/parser"
)

// CSVFormatter writes the three-section report: requests per address, the
// most accessed endpoint, and suspicious activity. Sections are separated
// by an empty row and rows end in CRLF.
type CSVFormatter struct{}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format renders the report as CSV.
func (f *CSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	rows := [][]string{{"IP Address", "Request Count"}}
	for _, ac := range report.Requests {
		rows = append(rows, []string{ac.Address, strconv.Itoa(ac.Count)})
	}
	rows = append(rows,
		nil,
		[]string{"Most Accessed Endpoint"},
		[]string{"Endpoint", "Access Count"},
		[]string{report.TopEndpoint.Path, strconv.Itoa(report.TopEndpoint.Count)},
		nil,
		[]string{"Suspicious Activity"},
		[]string{"IP Address", "Failed Login Count"},
	)
	for _, e := range report.Suspicious {
		rows = append(rows, []string{e.Address, strconv.Itoa(e.Failures)})
	}

	// WriteAll flushes and reports the first write error.
	return cw.WriteAll(rows)
}

// WriteReportFile creates (or truncates) path and writes the CSV report to
// it. Any failure to create, write or close the file is returned as a
// *parser.FileAccessError.
func WriteReportFile(ctx context.Context, path string, report *Report) (err error) {
	f, err := os.Create(path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return &parser.FileAccessError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &parser.FileAccessError{Op: "write", Path: path, Err: cerr}
		}
	}()

	if err := NewCSVFormatter().Format(ctx, report, f); err != nil {
		return &parser.FileAccessError{Op: "write", Path: path, Err: err}
	}
	return nil
}
