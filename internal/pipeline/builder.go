package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/assetbuild/internal/compiler"
	"git.home.luguber.info/inful/assetbuild/internal/config"
	"git.home.luguber.info/inful/assetbuild/internal/htmlrewrite"
	"git.home.luguber.info/inful/assetbuild/internal/logfields"
	"git.home.luguber.info/inful/assetbuild/internal/metrics"
	"git.home.luguber.info/inful/assetbuild/internal/output"
	"git.home.luguber.info/inful/assetbuild/internal/revision"
)

// Builder runs asset builds for one configuration.
type Builder struct {
	cfg      *config.Config
	compiler compiler.Compiler
	recorder metrics.Recorder
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithClock sets the time source used for the build stamp and report times.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// New returns a Builder for cfg. The compiler defaults to esbuild when nil.
func New(cfg *config.Config, c compiler.Compiler, opts ...Option) *Builder {
	if c == nil {
		c = compiler.NewESBuild()
	}
	b := &Builder{
		cfg:      cfg,
		compiler: c,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Pipeline returns the ordered stages of an asset build.
func (b *Builder) Pipeline() []StageDef {
	return NewPipeline().
		Add(StageEnsureOutput, StateDirReady, stageEnsureOutput).
		Add(StageCompileScript, StateScriptBuilt, stageCompileScript).
		Add(StageMinifyStylesheet, StateStyleBuilt, stageMinifyStylesheet).
		Add(StageRewritePage, StateHtmlBuilt, stageRewritePage).
		Add(StageListOutput, StateDone, stageListOutput).
		Build()
}

// Run executes one build. The report is returned on success and on failure;
// on failure the error is the *StageError of the stage that stopped the build.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	start := b.now()
	report := newReport(uuid.NewString(), start)
	report.BuildStamp = htmlrewrite.Stamp(start)

	if rev, err := revision.Detect(b.cfg.SourceDir); err == nil {
		report.SourceRevision = rev
		slog.Debug("Detected source revision", logfields.BuildID(report.BuildID), logfields.Revision(rev))
	} else {
		slog.Debug("Source revision unavailable", logfields.Path(b.cfg.SourceDir), logfields.Error(err))
	}

	slog.Info("Starting asset build",
		logfields.BuildID(report.BuildID),
		slog.String("source_dir", b.cfg.SourceDir),
		slog.String("output_dir", b.cfg.OutputDir))

	bs := &BuildState{
		Config:     b.cfg,
		Output:     output.NewManager(b.cfg.OutputDir),
		Compiler:   b.compiler,
		Recorder:   b.recorder,
		BuildStamp: report.BuildStamp,
		Report:     report,
	}

	err := RunStages(ctx, bs, b.Pipeline())

	report.finish(b.now(), err)
	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(string(report.Outcome))

	if err != nil {
		slog.Debug("Asset build stopped",
			logfields.BuildID(report.BuildID),
			logfields.State(string(report.State)),
			logfields.Stage(report.FailedStage),
			logfields.Error(err))
		return report, err
	}

	slog.Info("Asset build complete",
		logfields.BuildID(report.BuildID),
		slog.Any("files", report.Files),
		logfields.DurationMS(float64(report.Duration().Microseconds())/1000))
	return report, nil
}
