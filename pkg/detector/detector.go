// Package detector samples a log file and reports which extraction layout
// fits it best.
package detector

import (
	"bufio"
	"context"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/ccollicutt/logtally/pkg/parser"
)

// DefaultSampleSize is the number of lines sampled when none is given.
const DefaultSampleSize = 100

// maxLineSize bounds a single sampled line.
const maxLineSize = 1024 * 1024

var skipLine = regexp.MustCompile(`^\s*(#|$)`)

// DetectionResult holds the result of sampling a log file.
type DetectionResult struct {
	Matches      []ProfileMatch // Profiles with at least one hit, best first
	SampledLines int
}

// ProfileMatch records how well one profile fits the sampled lines.
type ProfileMatch struct {
	Profile         *Profile
	Confidence      float64 // Fraction of sampled lines with both an address and a path
	MatchCount      int     // Lines with both an address and a path
	AddressMatches  int
	EndpointMatches int
	FailureLines    int
	SampleLine      string // First fully matched line
	SampleAddress   string
	SampleEndpoint  string
	UnmatchedLine   string // First line the profile could not read, if any
}

// Detector tries each known profile against a sample of log lines.
type Detector struct {
	profiles   []*Profile
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithProfiles replaces the built-in profiles.
func WithProfiles(profiles ...*Profile) Option {
	return func(d *Detector) {
		if len(profiles) > 0 {
			d.profiles = profiles
		}
	}
}

// New creates a new Detector with the default profiles.
func New(opts ...Option) *Detector {
	d := &Detector{
		profiles:   DefaultProfiles(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples the head of a log file and scores every profile.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines scores every profile against lines. Blank lines and
// comments are ignored.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	var sample []string
	for _, line := range lines {
		if !skipLine.MatchString(line) {
			sample = append(sample, line)
		}
	}

	result := &DetectionResult{SampledLines: len(sample)}
	if len(sample) == 0 {
		return result
	}

	for _, p := range d.profiles {
		ex, err := p.Extractor()
		if err != nil {
			continue
		}
		m := score(p, ex, sample)
		if m.AddressMatches == 0 && m.EndpointMatches == 0 {
			continue
		}
		m.Confidence = float64(m.MatchCount) / float64(len(sample))
		result.Matches = append(result.Matches, m)
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].MatchCount > result.Matches[j].MatchCount
	})

	return result
}

func score(p *Profile, ex parser.Extractor, lines []string) ProfileMatch {
	m := ProfileMatch{Profile: p}

	for _, line := range lines {
		addr, hasAddr := ex.Address(line)
		path, hasPath := ex.Endpoint(line)
		if hasAddr {
			m.AddressMatches++
		}
		if hasPath {
			m.EndpointMatches++
		}
		if ex.IsFailure(line) {
			m.FailureLines++
		}

		switch {
		case hasAddr && hasPath:
			m.MatchCount++
			if m.SampleLine == "" {
				m.SampleLine = strings.TrimSpace(line)
				m.SampleAddress = addr
				m.SampleEndpoint = path
			}
		case m.UnmatchedLine == "":
			m.UnmatchedLine = strings.TrimSpace(line)
		}
	}

	return m
}

// sampleFile reads up to sampleSize non-blank, non-comment lines from the
// head of a file and stops reading once it has them.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, &parser.FileAccessError{Op: "read", Path: path, Err: err}
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for len(lines) < d.sampleSize && scanner.Scan() {
		line := scanner.Text()
		if !skipLine.MatchString(line) {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &parser.FileAccessError{Op: "read", Path: path, Err: err}
	}

	return lines, nil
}

// BestMatch returns the highest scoring profile, or nil if none matched.
func (r *DetectionResult) BestMatch() *ProfileMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one profile fully matched a line.
func (r *DetectionResult) HasMatch() bool {
	best := r.BestMatch()
	return best != nil && best.MatchCount > 0
}
