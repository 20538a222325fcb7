package pipeline

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/assetbuild/internal/compiler"
	"git.home.luguber.info/inful/assetbuild/internal/cssmin"
	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/assetbuild/internal/htmlrewrite"
	"git.home.luguber.info/inful/assetbuild/internal/logfields"
)

func stageEnsureOutput(_ context.Context, bs *BuildState) error {
	return bs.Output.Ensure()
}

func stageCompileScript(ctx context.Context, bs *BuildState) error {
	entry := bs.Source(RoleScriptEntry).Path
	script, err := bs.Compiler.Compile(ctx, entry, compiler.BuildOptions(bs.Config.Script.Target))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.CompileError(entry, err).Build()
	}
	return bs.writeArtifact(bs.Config.Script.Output, script, fileSize(entry))
}

func stageMinifyStylesheet(_ context.Context, bs *BuildState) error {
	path := bs.Source(RoleStylesheet).Path
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.ReadError(path, err).Build()
	}
	minified := cssmin.Minify(string(source))
	return bs.writeArtifact(bs.Config.Stylesheet.Output, []byte(minified), int64(len(source)))
}

func stageRewritePage(_ context.Context, bs *BuildState) error {
	path := bs.Source(RolePage).Path
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.ReadError(path, err).Build()
	}

	rules := htmlrewrite.NewRules(
		htmlrewrite.Asset{Source: bs.Config.Stylesheet.Source, Minified: bs.Config.Stylesheet.Output},
		htmlrewrite.Asset{Source: bs.Config.Script.Entry, Minified: bs.Config.Script.Output},
		bs.Config.StaticPrefix,
	)
	logUnmatched(string(source), rules)

	page := htmlrewrite.Rewrite(string(source), rules, bs.BuildStamp)
	return bs.writeArtifact(bs.Config.Page.Output, []byte(page), int64(len(source)))
}

func stageListOutput(_ context.Context, bs *BuildState) error {
	files, err := bs.Output.List()
	if err != nil {
		return err
	}
	bs.Report.Files = files
	return nil
}

// logUnmatched notes rules whose target is absent. Absent targets are not an
// error; the page is left as it is for that rule.
func logUnmatched(doc string, rules htmlrewrite.Rules) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, r := range rules {
		if !r.Matches(doc) {
			slog.Debug("Rewrite target absent", logfields.Rule(r.Match))
		}
		doc = r.Apply(doc)
	}
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
