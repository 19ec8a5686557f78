package parser

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLines(t *testing.T) {
	path := writeLog(t, t.TempDir(), "access.log",
		"192.168.1.1 - - \"GET /index.html\" 200\n"+
			"\n"+
			"not an access line\n"+
			"10.0.0.5 - - \"POST /login\" 401 Invalid credentials\n")

	lines, err := LoadLines(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadLines() error = %v", err)
	}

	want := []LogLine{
		{Content: "192.168.1.1 - - \"GET /index.html\" 200", Source: path, LineNum: 1},
		{Content: "", Source: path, LineNum: 2},
		{Content: "not an access line", Source: path, LineNum: 3},
		{Content: "10.0.0.5 - - \"POST /login\" 401 Invalid credentials", Source: path, LineNum: 4},
	}
	if !cmp.Equal(want, lines) {
		t.Error(cmp.Diff(want, lines))
	}
}

func TestLoadLines_NoTrailingNewline(t *testing.T) {
	path := writeLog(t, t.TempDir(), "access.log", "a\nb")

	lines, err := LoadLines(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadLines() error = %v", err)
	}
	if len(lines) != 2 || lines[1].Content != "b" {
		t.Errorf("LoadLines() = %+v, want 2 lines ending in %q", lines, "b")
	}
}

func TestLoadLines_EmptyFile(t *testing.T) {
	path := writeLog(t, t.TempDir(), "empty.log", "")

	lines, err := LoadLines(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadLines() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("got %d lines, want 0", len(lines))
	}
}

func TestLoadLines_FileNotFound(t *testing.T) {
	_, err := LoadLines(context.Background(), "/nonexistent/sample.log")
	if err == nil {
		t.Fatal("LoadLines() expected error for missing file")
	}

	var fae *FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("error = %T, want *FileAccessError", err)
	}
	if fae.Op != "read" || fae.Path != "/nonexistent/sample.log" {
		t.Errorf("FileAccessError = %+v", fae)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got %v", err)
	}
}

func TestLoadLines_ContextCancelled(t *testing.T) {
	path := writeLog(t, t.TempDir(), "access.log", "line\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadLines(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("LoadLines() error = %v, want context.Canceled", err)
	}
}

func TestLoader_Load_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "b.log", "second\n")
	writeLog(t, dir, "a.log", "first\n")
	writeLog(t, dir, "c.txt", "ignored\n")

	var buf bytes.Buffer
	ld := NewLoader(WithLogger(log.New(&buf, "", 0)))

	lines, err := ld.Load(context.Background(), []string{filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var got []string
	for _, l := range lines {
		got = append(got, l.Content)
	}
	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Errorf("Load() lines mismatch (-want +got):\n%s", diff)
	}

	if !strings.Contains(buf.String(), "loader: 2 lines total from 2 files") {
		t.Errorf("missing summary log line, got:\n%s", buf.String())
	}
}

func TestLoader_Load_MissingLiteralPath(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "a.log", "first\n")

	_, err := NewLoader().Load(context.Background(), []string{
		filepath.Join(dir, "a.log"),
		filepath.Join(dir, "missing.log"),
	})

	var fae *FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("Load() error = %v, want *FileAccessError", err)
	}
	if !strings.HasSuffix(fae.Path, "missing.log") {
		t.Errorf("Path = %q, want missing.log", fae.Path)
	}
}

func openFDs(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Fatalf("listing open files: %v", err)
	}
	return len(entries)
}

func TestLoadLines_ReadFailureReleasesHandle(t *testing.T) {
	if runtime.GOOS != "linux" {
		return
	}
	dir := t.TempDir()

	before := openFDs(t)
	for i := 0; i < 50; i++ {
		_, err := LoadLines(context.Background(), dir)
		var fae *FileAccessError
		if !errors.As(err, &fae) {
			t.Fatalf("reading a directory: expected *FileAccessError, got %v", err)
		}
	}
	after := openFDs(t)

	// Allow for descriptors opened concurrently by the runtime.
	if after-before > 2 {
		t.Errorf("open descriptors grew from %d to %d after failed reads", before, after)
	}
}
