package analyzer

import (
	"context"

	"github.com/ccollicutt/logtally/pkg/parser"
)

// CountRequests tallies requests per leading source address. Lines without
// an address are ignored. The result is sorted by count descending; equal
// counts keep the order in which the addresses first appeared.
func CountRequests(ctx context.Context, lines []parser.LogLine, ex parser.Extractor) ([]AddressCount, error) {
	t := newTally()
	err := scan(ctx, lines, func(line string) {
		if addr, ok := ex.Address(line); ok {
			t.add(addr)
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]AddressCount, 0, t.len())
	for _, addr := range t.ranked() {
		out = append(out, AddressCount{Address: addr, Count: t.counts[addr]})
	}
	return out, nil
}
