package parser

import "fmt"

// FileAccessError reports a log or report file that could not be opened,
// read, created or written. It is always fatal to a run.
type FileAccessError struct {
	Op   string // "read", "create", "write"
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
