package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// bruteForceLog has 11 failed logins from 203.0.113.5 and two clean
// requests from 192.168.1.1.
func bruteForceLog() string {
	var b strings.Builder
	b.WriteString(`192.168.1.1 - - [03/Dec/2024:10:12:34 +0000] "GET /home HTTP/1.1" 200 512` + "\n")
	for i := 0; i < 11; i++ {
		fmt.Fprintf(&b, `203.0.113.5 - - [03/Dec/2024:10:13:%02d +0000] "POST /login HTTP/1.1" 401 128 "Invalid credentials"`+"\n", i)
	}
	b.WriteString(`192.168.1.1 - - [03/Dec/2024:10:14:00 +0000] "GET /about HTTP/1.1" 200 256` + "\n")
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// clearEnv keeps LOGTALLY_* variables from the caller's shell out of a test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOGTALLY_INPUT", "")
	t.Setenv("LOGTALLY_OUTPUT", "")
	t.Setenv("LOGTALLY_FAILURE_THRESHOLD", "")
}

// runCommand executes cmd with args and returns its stdout and stderr.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	ExitCode = 0
	t.Cleanup(func() { ExitCode = 0 })

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
