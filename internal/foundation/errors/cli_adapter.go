package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter writing user-facing messages to stderr.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// WithOutput redirects user-facing messages (used by tests).
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.out = w
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if classified, ok := AsClassified(err); ok {
		return a.exitCodeFromClassified(classified)
	}

	return 1
}

// exitCodeFromClassified maps ClassifiedError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromClassified(err *ClassifiedError) int {
	switch err.Category() {
	case CategoryValidation:
		return 2 // Invalid usage or failed verification
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryCompile:
		return 9 // Script compiler failure
	case CategoryDirectory, CategoryRead, CategoryWrite:
		return 11 // Filesystem error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if classified, ok := AsClassified(err); ok {
		return a.formatClassified(classified)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatClassified formats a ClassifiedError for display. The cause is always
// included so compiler diagnostics reach the user unmodified.
func (a *CLIErrorAdapter) formatClassified(err *ClassifiedError) string {
	msg := fmt.Sprintf("%s: %s", err.Category(), err.Message())
	if err.Cause() != nil {
		msg = fmt.Sprintf("%s: %v", msg, err.Cause())
	}
	if !a.verbose || len(err.Context()) == 0 {
		return msg
	}

	keys := make([]string, 0, len(err.Context()))
	for k := range err.Context() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msg += fmt.Sprintf("\n  %s: %v", k, err.Context()[k])
	}
	return msg
}

// Report logs err, prints the user-facing message and returns the exit code
// without terminating the process.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return 0
	}

	if a.shouldLog(err) {
		a.logError(err)
	}
	_, _ = fmt.Fprintf(a.out, "%s\n", a.FormatError(err))
	return a.ExitCodeFor(err)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if classified, ok := AsClassified(err); ok {
		return classified.Severity() == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if classified, ok := AsClassified(err); ok {
		level := a.slogLevelFromSeverity(classified.Severity())
		attrs := []slog.Attr{
			slog.String("category", string(classified.Category())),
		}
		for k, v := range classified.Context() {
			attrs = append(attrs, slog.Any(k, v))
		}
		if classified.Cause() != nil {
			attrs = append(attrs, slog.String("error", classified.Cause().Error()))
		}

		a.logger.LogAttrs(context.Background(), level, classified.Message(), attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts ClassifiedError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError, SeverityFatal:
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
