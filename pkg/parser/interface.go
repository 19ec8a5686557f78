package parser

// Extractor pulls the tokens the analysis passes count out of a raw line.
// Implementations never fail: a line that does not carry a token simply
// reports ok == false.
type Extractor interface {
	// Address returns the source address a line starts with.
	Address(line string) (addr string, ok bool)

	// Endpoint returns the request path of the HTTP request in a line.
	Endpoint(line string) (path string, ok bool)

	// IsFailure reports whether a line records an authentication failure.
	IsFailure(line string) bool
}
