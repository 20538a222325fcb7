package pipeline

import (
	"context"
	"fmt"
)

// State is the position of a build in its lifecycle.
type State string

const (
	StateInit        State = "init"
	StateDirReady    State = "dir_ready"
	StateScriptBuilt State = "script_built"
	StateStyleBuilt  State = "style_built"
	StateHtmlBuilt   State = "html_built"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool { return s == StateDone || s == StateFailed }

// Stage is a discrete unit of work in the asset build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names.
const (
	StageEnsureOutput     StageName = "ensure_output"
	StageCompileScript    StageName = "compile_script"
	StageMinifyStylesheet StageName = "minify_stylesheet"
	StageRewritePage      StageName = "rewrite_page"
	StageListOutput       StageName = "list_output"
)

// StageErrorKind classifies the outcome of a failed stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError carries the failing stage and the underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// NewFatalStageError creates a new fatal stage error.
func NewFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

// NewCanceledStageError creates a stage error for a canceled context.
func NewCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageResult captures the high-level outcome of a stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// StageDef pairs a stage name with its executing function and the state the
// build enters once the stage succeeds.
type StageDef struct {
	Name StageName
	Next State
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 4)} }

// Add appends a stage.
func (p *Pipeline) Add(name StageName, next State, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Next: next, Fn: fn})
	return p
}

// Build returns a copy of the stage definitions slice.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}
