package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// captureStderr runs fn with os.Stderr redirected to a pipe and
// returns everything written. A pipe is not a terminal, so color must
// stay disabled.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func Test_ReportError_PlainWhenStderrRedirected(t *testing.T) {
	// Simulate a terminal stdout (the package-global auto-detection
	// would otherwise keep color off in tests regardless).
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	out := captureStderr(t, func() {
		reportError(errors.New("boom"))
	})
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("ANSI escape written to a redirected stderr: %q", out)
	}
	if !strings.Contains(out, "boom") {
		t.Fatalf("output %q", out)
	}
}

func Test_RunCheck_TabSizeFlagReachesSnippet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tabbed.json")
	if err := os.WriteFile(path, []byte("{\n\t\"a\" 1\n}"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldTab := checkTabSize
	defer func() { checkTabSize = oldTab }()
	checkTabSize = 4

	var runErr error
	out := captureStderr(t, func() {
		runErr = runCheck(checkCmd, []string{path})
	})
	if runErr == nil {
		t.Fatal("expected runCheck to fail on malformed input")
	}
	// The tab before the offending '1' expands to column 9 at width 4
	// (it would be 13 at the default width of 8).
	if !strings.Contains(out, ":2:9: ") {
		t.Fatalf("tab width 4 not applied to the reported column:\n%s", out)
	}
}
