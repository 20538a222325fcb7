package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyState      = "state"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyArtifact   = "artifact"
	KeyBytes      = "bytes"
	KeyRule       = "rule"
	KeyRevision   = "revision"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func State(s string) slog.Attr        { return slog.String(KeyState, s) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Artifact(name string) slog.Attr  { return slog.String(KeyArtifact, name) }
func Bytes(n int) slog.Attr           { return slog.Int(KeyBytes, n) }
func Rule(match string) slog.Attr     { return slog.String(KeyRule, match) }
func Revision(rev string) slog.Attr   { return slog.String(KeyRevision, rev) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
