package commands

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	if cmd.Use != "analyze [log-file...]" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{
		"config", "output", "threshold", "format", "top", "quiet", "verbose",
		"fail-on-suspicious", "webhook-url", "webhook-token", "webhook-trigger",
	}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestNewVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, NewVersionCommand())
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "logtally "+Version+"\n" {
		t.Errorf("version output = %q", stdout)
	}
}

func TestRunValidate_Success(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	logPath := writeFile(t, tmpDir, "access.log", bruteForceLog())
	configPath := writeFile(t, tmpDir, "config.yaml", `input:
  - `+logPath+`
  - `+filepath.Join(tmpDir, "gone.log")+`
failure_threshold: 5
webhooks:
  - name: ops
    url: https://hooks.example.com/alert
`)

	stdout, _, err := runCommand(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	for _, want := range []string{
		"Configuration valid!",
		"Input:             2 pattern(s)",
		"Output:            log_analysis_results.csv",
		"Failure threshold: 5",
		"Webhooks:          1",
		"failure_markers:  401, Invalid credentials",
		"  - " + logPath + "\n",
		"gone.log (Warning: not found)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunValidate_Invalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "input: [unclosed", "parsing config file"},
		{"negative threshold", "failure_threshold: -3", "failure_threshold"},
		{"pattern without group", "extraction:\n  address_pattern: '^\\d+'", "capture group"},
		{"bad trigger", "webhooks:\n  - url: https://x.example.com\n    trigger: sometimes", "invalid trigger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.content)

			_, _, err := runCommand(t, NewValidateCommand(), path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, _, err := runCommand(t, NewValidateCommand(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestRunValidate_RequiresArgument(t *testing.T) {
	_, _, err := runCommand(t, NewValidateCommand())
	if err == nil {
		t.Error("Expected error without config argument")
	}
}
