package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Stage", KeyStage, "compile_script", Stage("compile_script")},
		{"State", KeyState, "DirReady", State("DirReady")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Artifact", KeyArtifact, "app.min.js", Artifact("app.min.js")},
		{"Rule", KeyRule, "styles.css", Rule("styles.css")},
		{"Revision", KeyRevision, "abc123", Revision("abc123")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if tc.attr.Value.String() != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, tc.attr.Value.String())
		}
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	if a := Bytes(42); a.Key != KeyBytes || a.Value.Int64() != 42 {
		t.Fatalf("Bytes: unexpected attr %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("DurationMS: unexpected attr %v", a)
	}
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("Error(nil): expected empty value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Fatalf("Error: expected boom, got %q", a.Value.String())
	}
}
