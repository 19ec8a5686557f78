package analyzer

import (
	"context"

	"github.com/ccollicutt/logtally/pkg/parser"
)

// RankEndpoints tallies requests per path and returns every path sorted by
// count descending, ties in first-seen order. It returns ErrEmptyResult if
// no line carries a path.
func RankEndpoints(ctx context.Context, lines []parser.LogLine, ex parser.Extractor) ([]EndpointCount, error) {
	t := newTally()
	err := scan(ctx, lines, func(line string) {
		if path, ok := ex.Endpoint(line); ok {
			t.add(path)
		}
	})
	if err != nil {
		return nil, err
	}
	if t.len() == 0 {
		return nil, ErrEmptyResult
	}

	out := make([]EndpointCount, 0, t.len())
	for _, path := range t.ranked() {
		out = append(out, EndpointCount{Path: path, Count: t.counts[path]})
	}
	return out, nil
}

// MostAccessedEndpoint returns the path requested most often. When several
// paths share the maximum count the one seen first wins.
func MostAccessedEndpoint(ctx context.Context, lines []parser.LogLine, ex parser.Extractor) (EndpointCount, error) {
	ranked, err := RankEndpoints(ctx, lines, ex)
	if err != nil {
		return EndpointCount{}, err
	}
	return ranked[0], nil
}
