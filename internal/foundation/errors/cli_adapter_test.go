package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation error", ValidationError("missing reference").Build(), 2},
		{"config error", ConfigError("bad config").Build(), 7},
		{"compile error", CompileError("app.js", errors.New("syntax")).Build(), 9},
		{"directory error", DirectoryError("dist", errors.New("exists")).Build(), 11},
		{"read error", ReadError("styles.css", errors.New("missing")).Build(), 11},
		{"write error", WriteError("index.html", errors.New("denied")).Build(), 11},
		{"internal error", InternalError("unexpected state").Build(), 10},
		{"unclassified error", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_ReportPassesCauseThrough(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	adapter := NewCLIErrorAdapter(false, logger).WithOutput(&out)

	diag := `src/web/app.js:3:4: ERROR: Expected ";" but found "x"`
	code := adapter.Report(CompileError("src/web/app.js", errors.New(diag)).Build())

	if code != 9 {
		t.Errorf("Report() = %d, want 9", code)
	}
	if !strings.Contains(out.String(), diag) {
		t.Errorf("expected compiler diagnostics verbatim in output, got %q", out.String())
	}
	if !strings.HasPrefix(out.String(), "compile: script compilation failed") {
		t.Errorf("unexpected message prefix: %q", out.String())
	}
}

func TestCLIErrorAdapter_VerboseIncludesContext(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIErrorAdapter(true, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).WithOutput(&out)

	adapter.Report(WriteError("dist/index.html", errors.New("read-only file system")).Build())

	if !strings.Contains(out.String(), "path: dist/index.html") {
		t.Errorf("expected context in verbose output, got %q", out.String())
	}
}

func TestCLIErrorAdapter_Unclassified(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))).WithOutput(&out)

	if code := adapter.Report(errors.New("plain failure")); code != 1 {
		t.Errorf("Report() = %d, want 1", code)
	}
	if strings.TrimSpace(out.String()) != "Error: plain failure" {
		t.Errorf("unexpected output %q", out.String())
	}
}
