package analyzer

import (
	"context"

	"github.com/ccollicutt/logtally/pkg/parser"
)

// scan calls fn for every line in order, stopping early if ctx is done.
func scan(ctx context.Context, lines []parser.LogLine, fn func(line string)) error {
	for i := range lines {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		fn(lines[i].Content)
	}
	return nil
}
