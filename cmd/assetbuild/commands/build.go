package commands

import (
	"context"
	"io"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"git.home.luguber.info/inful/assetbuild/internal/compiler"
	"git.home.luguber.info/inful/assetbuild/internal/config"
	"git.home.luguber.info/inful/assetbuild/internal/logfields"
	"git.home.luguber.info/inful/assetbuild/internal/metrics"
	"git.home.luguber.info/inful/assetbuild/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Source string `short:"s" name:"source" help:"Override source_dir"`
	Output string `short:"o" name:"output" help:"Override output_dir"`
	Report string `name:"report" help:"Write the build report as JSON to this path (overrides report.file)"`
}

func (b *BuildCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if b.Source != "" {
		cfg.SourceDir = b.Source
	}
	if b.Output != "" {
		cfg.OutputDir = b.Output
	}
	if b.Report != "" {
		cfg.Report.File = b.Report
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	return RunBuild(ctx, cfg, g.Stdout)
}

// RunBuild builds cfg and prints the produced files to out.
func RunBuild(ctx context.Context, cfg *config.Config, out io.Writer) error {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var promRecorder *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		promRecorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
		recorder = promRecorder
	}

	report, buildErr := pipeline.New(cfg, compiler.NewESBuild(), pipeline.WithRecorder(recorder)).Run(ctx)

	// Metrics and the report are written for failed builds too.
	if promRecorder != nil {
		if err := promRecorder.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}
	if cfg.Report.File != "" && report != nil {
		if err := report.WriteJSON(cfg.Report.File); err != nil {
			slog.Warn("Failed to write build report", logfields.Path(cfg.Report.File), logfields.Error(err))
		}
	}

	if buildErr != nil {
		return buildErr
	}
	printSummary(out, cfg.OutputDir, report)
	return nil
}

func printSummary(out io.Writer, outputDir string, report *pipeline.Report) {
	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(out, "Built %d files in %s\n", len(report.Files), outputDir)
	for _, name := range report.Files {
		a, ok := report.Artifact(name)
		if !ok {
			_, _ = p.Fprintf(out, "  %s\n", name)
			continue
		}
		if a.SourceBytes > 0 {
			saved := 100 * (1 - float64(a.Bytes)/float64(a.SourceBytes))
			_, _ = p.Fprintf(out, "  %s  %d bytes (source %d bytes, %.1f%% smaller)\n", name, a.Bytes, a.SourceBytes, saved)
			continue
		}
		_, _ = p.Fprintf(out, "  %s  %d bytes\n", name, a.Bytes)
	}
}
