// logtally - Access Log Analyzer
//
// logtally counts requests per address, finds the most accessed endpoint and
// flags addresses with repeated failed logins.
package main

import (
	"os"

	"github.com/ccollicutt/logtally/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
