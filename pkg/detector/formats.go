package detector

import (
	"fmt"
	"regexp"

	"github.com/ccollicutt/logtally/pkg/parser"
)

// Profile is a known access-log layout expressed as extraction patterns.
type Profile struct {
	Name            string
	AddressPattern  string
	EndpointPattern string
	Example         string

	address  *regexp.Regexp
	endpoint *regexp.Regexp
}

// Extractor returns a line extractor for the profile using the default
// failure markers. Patterns are compiled on first use.
func (p *Profile) Extractor() (*parser.PatternExtractor, error) {
	if p.address == nil || p.endpoint == nil {
		address, err := regexp.Compile(p.AddressPattern)
		if err != nil {
			return nil, fmt.Errorf("profile %s: address pattern: %w", p.Name, err)
		}
		endpoint, err := regexp.Compile(p.EndpointPattern)
		if err != nil {
			return nil, fmt.Errorf("profile %s: endpoint pattern: %w", p.Name, err)
		}
		p.address, p.endpoint = address, endpoint
	}
	return parser.NewPatternExtractor(p.address, p.endpoint, parser.DefaultFailureMarkers)
}

// DefaultProfiles returns the built-in layouts to try, most common first.
// Ties in match rate are resolved in this order.
func DefaultProfiles() []*Profile {
	profiles := []*Profile{
		{
			Name:            "Common/Combined (IPv4)",
			AddressPattern:  parser.DefaultAddressPattern,
			EndpointPattern: parser.DefaultEndpointPattern,
			Example:         `192.168.1.1 - - [03/Dec/2024:10:12:34 +0000] "GET /home HTTP/1.1" 200 512`,
		},
		{
			Name:            "Common/Combined (IPv6)",
			AddressPattern:  `^([0-9A-Fa-f]*:[0-9A-Fa-f:.]+)\s`,
			EndpointPattern: parser.DefaultEndpointPattern,
			Example:         `2001:db8::1 - - [03/Dec/2024:10:12:34 +0000] "GET /home HTTP/1.1" 200 512`,
		},
		{
			Name:            "Key=value",
			AddressPattern:  `\b(?:client|ip|remote_addr|src)=(\d+\.\d+\.\d+\.\d+)`,
			EndpointPattern: `\b(?:path|uri|url)=(/[^\s"?]*)`,
			Example:         `ts=2024-12-03T10:12:34Z client=10.0.0.7 method=POST path=/login status=401`,
		},
		{
			Name:            "JSON lines",
			AddressPattern:  `"(?:remote_addr|client_ip|ip)"\s*:\s*"([^"]+)"`,
			EndpointPattern: `"(?:path|uri|request_uri)"\s*:\s*"(/[^"?]*)`,
			Example:         `{"remote_addr":"10.0.0.7","method":"GET","path":"/home","status":200}`,
		},
	}

	for _, p := range profiles {
		p.address = regexp.MustCompile(p.AddressPattern)
		p.endpoint = regexp.MustCompile(p.EndpointPattern)
	}

	return profiles
}
