// Package parser loads access log files and extracts the tokens the
// analysis passes count: source address, request path and failure markers.
package parser

// LogLine is a single raw line from an access log.
type LogLine struct {
	// Content is the raw line text without its line terminator.
	Content string

	// Source is the file path this line came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}
