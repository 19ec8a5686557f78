package analyzer

import (
	"context"

	"github.com/ccollicutt/logtally/pkg/parser"
)

// DetectSuspicious counts failed logins per leading source address and
// keeps the addresses whose count is strictly greater than threshold.
// Entries are ordered by each address's first failure.
func DetectSuspicious(ctx context.Context, lines []parser.LogLine, ex parser.Extractor, threshold int) ([]SuspiciousEntry, error) {
	t := newTally()
	err := scan(ctx, lines, func(line string) {
		if !ex.IsFailure(line) {
			return
		}
		if addr, ok := ex.Address(line); ok {
			t.add(addr)
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]SuspiciousEntry, 0)
	for _, addr := range t.keys {
		if n := t.counts[addr]; n > threshold {
			out = append(out, SuspiciousEntry{Address: addr, Failures: n})
		}
	}
	return out, nil
}
