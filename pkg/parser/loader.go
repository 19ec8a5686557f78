package parser

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/bitfield/script"
)

// Loader reads log files into memory as ordered line sequences.
type Loader struct {
	logger *log.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sends per-file progress lines to l.
func WithLogger(l *log.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// NewLoader creates a Loader. Progress logging is discarded unless
// WithLogger is given.
func NewLoader(opts ...LoaderOption) *Loader {
	ld := &Loader{
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// LoadLines reads the file at path into an ordered slice of lines.
// Line terminators are stripped; content and order are otherwise preserved.
func LoadLines(ctx context.Context, path string) ([]LogLine, error) {
	return NewLoader().LoadFile(ctx, path)
}

// LoadFile reads a single file. A missing or unreadable file yields a
// *FileAccessError and no lines.
func (ld *Loader) LoadFile(ctx context.Context, path string) ([]LogLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided log path is expected
	if err != nil {
		return nil, &FileAccessError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	raw, err := script.NewPipe().WithReader(f).Slice()
	if err != nil {
		return nil, &FileAccessError{Op: "read", Path: path, Err: err}
	}

	lines := make([]LogLine, len(raw))
	for i, content := range raw {
		lines[i] = LogLine{
			Content: content,
			Source:  path,
			LineNum: i + 1,
		}
	}

	ld.logger.Printf("loader: read %d lines from %s", len(lines), path)
	return lines, nil
}

// Load expands the given paths and glob patterns and concatenates the lines
// of every matched file, file by file in sorted path order. Any unreadable
// file aborts the whole load.
func (ld *Loader) Load(ctx context.Context, patterns []string) ([]LogLine, error) {
	files, err := ExpandGlobs(patterns)
	if err != nil {
		return nil, err
	}

	var all []LogLine
	for _, file := range files {
		lines, err := ld.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		all = append(all, lines...)
	}

	if len(files) > 1 {
		ld.logger.Printf("loader: %d lines total from %d files", len(all), len(files))
	}
	return all, nil
}
