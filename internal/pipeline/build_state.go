package pipeline

import (
	"log/slog"

	"github.com/samber/lo"

	"git.home.luguber.info/inful/assetbuild/internal/compiler"
	"git.home.luguber.info/inful/assetbuild/internal/config"
	"git.home.luguber.info/inful/assetbuild/internal/logfields"
	"git.home.luguber.info/inful/assetbuild/internal/metrics"
	"git.home.luguber.info/inful/assetbuild/internal/output"
)

// AssetRole identifies what a source asset is used for.
type AssetRole string

const (
	RoleScriptEntry AssetRole = "script-entry"
	RoleStylesheet  AssetRole = "stylesheet"
	RolePage        AssetRole = "page"
)

// SourceAsset is one input file of the build.
type SourceAsset struct {
	Path string
	Role AssetRole
}

// BuildState carries everything the stages of one build share.
type BuildState struct {
	Config     *config.Config
	Output     *output.Manager
	Compiler   compiler.Compiler
	Recorder   metrics.Recorder
	BuildStamp string
	Report     *Report
}

// Sources returns the source assets of the build in stage order.
func (bs *BuildState) Sources() []SourceAsset {
	return []SourceAsset{
		{Path: bs.Config.ScriptEntryPath(), Role: RoleScriptEntry},
		{Path: bs.Config.StylesheetPath(), Role: RoleStylesheet},
		{Path: bs.Config.PagePath(), Role: RolePage},
	}
}

// Source returns the source asset with the given role.
func (bs *BuildState) Source(role AssetRole) SourceAsset {
	src, _ := lo.Find(bs.Sources(), func(s SourceAsset) bool { return s.Role == role })
	return src
}

// State returns the current build state.
func (bs *BuildState) State() State { return bs.Report.State }

func (bs *BuildState) setState(s State) {
	if bs.Report.State.Terminal() {
		return
	}
	bs.Report.State = s
	slog.Debug("Build state changed", logfields.BuildID(bs.Report.BuildID), logfields.State(string(s)))
}

// writeArtifact stores a fully transformed artifact and records it.
func (bs *BuildState) writeArtifact(name string, data []byte, sourceBytes int64) error {
	path, err := bs.Output.Write(name, data)
	if err != nil {
		return err
	}
	bs.Report.Artifacts = append(bs.Report.Artifacts, Artifact{
		Name:        name,
		Path:        path,
		Bytes:       len(data),
		SourceBytes: sourceBytes,
	})
	bs.Recorder.SetArtifactBytes(name, len(data))
	slog.Info("Artifact written", logfields.Artifact(name), logfields.Path(path), logfields.Bytes(len(data)))
	return nil
}
