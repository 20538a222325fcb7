package pipeline

import (
	"encoding/json"
	stdErrors "errors"
	"os"
	"time"

	"github.com/samber/lo"

	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/assetbuild/internal/version"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Artifact is one file written to the output directory.
type Artifact struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Bytes       int    `json:"bytes"`
	SourceBytes int64  `json:"source_bytes"` // size of the source asset; 0 when unknown
}

// Report summarizes one build run.
type Report struct {
	SchemaVersion  int                      `json:"schema_version"`
	BuildID        string                   `json:"build_id"`
	Version        string                   `json:"version"`
	Start          time.Time                `json:"start"`
	End            time.Time                `json:"end"`
	BuildStamp     string                   `json:"build_stamp"`
	Outcome        BuildOutcome             `json:"outcome"`
	State          State                    `json:"state"`
	FailedStage    string                   `json:"failed_stage,omitempty"`
	Error          string                   `json:"error,omitempty"`
	StageDurations map[string]time.Duration `json:"stage_durations"`
	StageResults   map[string]StageResult   `json:"stage_results"`
	// Artifacts lists written files in write order.
	Artifacts []Artifact `json:"artifacts"`
	// Files is the output directory listing taken once the build is done.
	Files          []string `json:"files,omitempty"`
	SourceRevision string   `json:"source_revision,omitempty"`
}

func newReport(buildID string, start time.Time) *Report {
	return &Report{
		SchemaVersion:  1,
		BuildID:        buildID,
		Version:        version.Version,
		Start:          start,
		State:          StateInit,
		StageDurations: make(map[string]time.Duration),
		StageResults:   make(map[string]StageResult),
		Artifacts:      make([]Artifact, 0, 3),
	}
}

// finish stamps the end time and derives the outcome from err.
func (r *Report) finish(end time.Time, err error) {
	r.End = end
	switch {
	case err == nil:
		r.Outcome = OutcomeSuccess
	case isCanceled(err):
		r.Outcome = OutcomeCanceled
		r.Error = err.Error()
	default:
		r.Outcome = OutcomeFailed
		r.Error = err.Error()
	}
}

// Duration returns the wall time of the build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// ArtifactPaths returns the paths of written artifacts in write order.
func (r *Report) ArtifactPaths() []string {
	return lo.Map(r.Artifacts, func(a Artifact, _ int) string { return a.Path })
}

// Artifact returns the artifact named name.
func (r *Report) Artifact(name string) (Artifact, bool) {
	return lo.Find(r.Artifacts, func(a Artifact) bool { return a.Name == name })
}

// WriteJSON stores the report as indented JSON at path.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode build report").Fatal().Build()
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.WriteError(path, err).Build()
	}
	return nil
}

func isCanceled(err error) bool {
	var se *StageError
	return stdErrors.As(err, &se) && se.Kind == StageErrorCanceled
}
