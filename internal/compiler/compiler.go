// Package compiler wraps the script bundler/minifier used by the build.
//
// The build treats the compiler as an opaque collaborator: it hands over an
// entry path plus fixed options and gets back one minified script or an error
// carrying the compiler's diagnostics as they were reported.
package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// DefaultTarget is the language level emitted when none is configured.
const DefaultTarget = "es2018"

// Options controls one compilation.
type Options struct {
	Bundle    bool
	Minify    bool
	Sourcemap bool
	Target    string
}

// BuildOptions returns the options every build uses: bundled, minified,
// without source maps, at the given target.
func BuildOptions(target string) Options {
	if target == "" {
		target = DefaultTarget
	}
	return Options{Bundle: true, Minify: true, Sourcemap: false, Target: target}
}

// Compiler turns a script entry point into a single script.
type Compiler interface {
	Compile(ctx context.Context, entryPath string, opts Options) ([]byte, error)
}

// Diagnostics is the failure returned when the compiler reports errors.
// Error returns the compiler's messages unmodified.
type Diagnostics struct {
	Messages []string
}

func (d *Diagnostics) Error() string {
	return strings.TrimRight(strings.Join(d.Messages, ""), "\n")
}

// ESBuild compiles scripts with esbuild's Go API.
type ESBuild struct{}

// NewESBuild returns an esbuild-backed Compiler.
func NewESBuild() *ESBuild {
	return &ESBuild{}
}

var targets = map[string]api.Target{
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// ParseTarget maps a target tag such as "es2018" to esbuild's constant.
func ParseTarget(tag string) (api.Target, error) {
	t, ok := targets[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return api.DefaultTarget, fmt.Errorf("unsupported script target %q", tag)
	}
	return t, nil
}

// Compile bundles and minifies entryPath in memory. Nothing is written to disk.
func (e *ESBuild) Compile(ctx context.Context, entryPath string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := ParseTarget(opts.Target)
	if err != nil {
		return nil, err
	}

	sourcemap := api.SourceMapNone
	if opts.Sourcemap {
		sourcemap = api.SourceMapInline
	}

	result := api.Build(api.BuildOptions{
		EntryPoints:       []string{entryPath},
		Outfile:           "out.js",
		Bundle:            opts.Bundle,
		Write:             false,
		Platform:          api.PlatformBrowser,
		Target:            target,
		Sourcemap:         sourcemap,
		MinifyWhitespace:  opts.Minify,
		MinifyIdentifiers: opts.Minify,
		MinifySyntax:      opts.Minify,
		LogLevel:          api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		return nil, &Diagnostics{Messages: api.FormatMessages(result.Errors, api.FormatMessagesOptions{
			Kind: api.ErrorMessage,
		})}
	}
	for _, f := range result.OutputFiles {
		if strings.HasSuffix(f.Path, ".js") {
			return f.Contents, nil
		}
	}
	return nil, fmt.Errorf("compiler produced no script output for %s", entryPath)
}
