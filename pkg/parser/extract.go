package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Default extraction patterns for access logs in the common/combined format.
const (
	DefaultAddressPattern  = `^(\d+\.\d+\.\d+\.\d+)`
	DefaultEndpointPattern = `"[A-Z]+\s(/[^\s"]*)`
)

// DefaultFailureMarkers are substrings that flag a failed login.
var DefaultFailureMarkers = []string{"401", "Invalid credentials"}

// PatternExtractor implements Extractor with regular expressions and
// literal failure markers. The first capture group of each pattern is the
// extracted token.
type PatternExtractor struct {
	address  *regexp.Regexp
	endpoint *regexp.Regexp
	markers  []string
}

// NewPatternExtractor creates an extractor from pre-compiled patterns.
// Both patterns must have at least one capture group.
func NewPatternExtractor(address, endpoint *regexp.Regexp, markers []string) (*PatternExtractor, error) {
	if address == nil || address.NumSubexp() < 1 {
		return nil, fmt.Errorf("address pattern must have a capture group")
	}
	if endpoint == nil || endpoint.NumSubexp() < 1 {
		return nil, fmt.Errorf("endpoint pattern must have a capture group")
	}
	return &PatternExtractor{
		address:  address,
		endpoint: endpoint,
		markers:  append([]string(nil), markers...),
	}, nil
}

// DefaultExtractor returns an extractor using the default patterns and
// failure markers.
func DefaultExtractor() *PatternExtractor {
	return &PatternExtractor{
		address:  regexp.MustCompile(DefaultAddressPattern),
		endpoint: regexp.MustCompile(DefaultEndpointPattern),
		markers:  append([]string(nil), DefaultFailureMarkers...),
	}
}

// Address returns the first capture of the address pattern.
func (e *PatternExtractor) Address(line string) (string, bool) {
	return firstGroup(e.address, line)
}

// Endpoint returns the first capture of the endpoint pattern.
func (e *PatternExtractor) Endpoint(line string) (string, bool) {
	return firstGroup(e.endpoint, line)
}

// IsFailure reports whether line contains any failure marker.
// Matching is case-sensitive substring containment.
func (e *PatternExtractor) IsFailure(line string) bool {
	for _, m := range e.markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

func firstGroup(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

var _ Extractor = (*PatternExtractor)(nil)
