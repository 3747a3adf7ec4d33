// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bhackett1/OptSimple/internal/monitoring"
)

// Output records everything written through the monitoring loggers.
type Output struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

// Infos returns the recorded informational lines.
func (o *Output) Infos() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.infos...)
}

// Errors returns the recorded error-level lines.
func (o *Output) Errors() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.errors...)
}

// HasInfo reports whether any informational line contains substr.
func (o *Output) HasInfo(substr string) bool {
	return containsAny(o.Infos(), substr)
}

// HasError reports whether any error line contains substr.
func (o *Output) HasError(substr string) bool {
	return containsAny(o.Errors(), substr)
}

func containsAny(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// CaptureOutput redirects monitoring.Logf and monitoring.Errorf into an Output
// for the duration of the test. Tests using it must not run in parallel.
func CaptureOutput(t *testing.T) *Output {
	t.Helper()
	origLog, origErr := monitoring.Logf, monitoring.Errorf
	out := &Output{}
	monitoring.SetLogger(func(format string, v ...interface{}) {
		out.mu.Lock()
		defer out.mu.Unlock()
		out.infos = append(out.infos, fmt.Sprintf(format, v...))
	})
	monitoring.SetErrorLogger(func(format string, v ...interface{}) {
		out.mu.Lock()
		defer out.mu.Unlock()
		out.errors = append(out.errors, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() {
		monitoring.Logf, monitoring.Errorf = origLog, origErr
	})
	return out
}

// WriteMacro writes lines into a macro file under t.TempDir and returns its path.
func WriteMacro(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.mac")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write macro: %v", err)
	}
	return path
}
