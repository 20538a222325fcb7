package config

import (
	"strings"

	"git.home.luguber.info/inful/assetbuild/internal/compiler"
)

// Built-in defaults, matching the conventional web source tree.
const (
	DefaultSourceDir        = "src/web"
	DefaultOutputDir        = "dist"
	DefaultStaticPrefix     = "/static/"
	DefaultScriptEntry      = "app.js"
	DefaultScriptOutput     = "app.min.js"
	DefaultStylesheet       = "styles.css"
	DefaultStylesheetOutput = "styles.min.css"
	DefaultPage             = "index.html"
	DefaultPageOutput       = "index.html"
)

func applyDefaults(cfg *Config) {
	if cfg.SourceDir == "" {
		cfg.SourceDir = DefaultSourceDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.StaticPrefix == "" {
		cfg.StaticPrefix = DefaultStaticPrefix
	}
	cfg.StaticPrefix = NormalizePrefix(cfg.StaticPrefix)

	if cfg.Script.Entry == "" {
		cfg.Script.Entry = DefaultScriptEntry
	}
	if cfg.Script.Output == "" {
		cfg.Script.Output = DefaultScriptOutput
	}
	if cfg.Script.Target == "" {
		cfg.Script.Target = compiler.DefaultTarget
	}
	if cfg.Stylesheet.Source == "" {
		cfg.Stylesheet.Source = DefaultStylesheet
	}
	if cfg.Stylesheet.Output == "" {
		cfg.Stylesheet.Output = DefaultStylesheetOutput
	}
	if cfg.Page.Source == "" {
		cfg.Page.Source = DefaultPage
	}
	if cfg.Page.Output == "" {
		cfg.Page.Output = DefaultPageOutput
	}
}

// NormalizePrefix makes a static prefix start and end with a slash.
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
