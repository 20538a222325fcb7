package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestESBuild_BundlesAndMinifies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "greet.js", "export function greet(name) {\n  return 'hello ' + name;\n}\n")
	entry := writeFile(t, dir, "app.js", "import { greet } from './greet.js';\n\nconsole.log(greet('world'));\n")

	out, err := NewESBuild().Compile(context.Background(), entry, BuildOptions(""))
	require.NoError(t, err)

	js := string(out)
	require.Contains(t, js, "hello ", "imported module must be inlined")
	require.NotContains(t, js, "import ", "bundled output must not keep import statements")
	require.NotContains(t, js, "\n  ", "minified output must not keep indentation")
	require.NotContains(t, js, "sourceMappingURL")
}

func TestESBuild_MissingEntry(t *testing.T) {
	entry := filepath.Join(t.TempDir(), "app.js")

	_, err := NewESBuild().Compile(context.Background(), entry, BuildOptions(DefaultTarget))

	require.Error(t, err)
	var diag *Diagnostics
	require.ErrorAs(t, err, &diag)
	require.NotEmpty(t, diag.Messages)
	require.True(t, strings.Contains(err.Error(), "app.js"), "diagnostics should name the entry: %v", err)
}

func TestESBuild_SyntaxError(t *testing.T) {
	entry := writeFile(t, t.TempDir(), "app.js", "function ( {\n")

	_, err := NewESBuild().Compile(context.Background(), entry, BuildOptions(DefaultTarget))

	var diag *Diagnostics
	require.ErrorAs(t, err, &diag)
	require.Contains(t, err.Error(), "app.js")
}

func TestESBuild_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewESBuild().Compile(ctx, "app.js", BuildOptions(""))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseTarget(t *testing.T) {
	got, err := ParseTarget(" ES2018 ")
	require.NoError(t, err)
	require.Equal(t, api.ES2018, got)

	_, err = ParseTarget("es3")
	require.Error(t, err)
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions("")
	require.True(t, opts.Bundle)
	require.True(t, opts.Minify)
	require.False(t, opts.Sourcemap)
	require.Equal(t, DefaultTarget, opts.Target)
}

func TestDiagnosticsErrorIsVerbatim(t *testing.T) {
	d := &Diagnostics{Messages: []string{"✘ [ERROR] first\n\n", "✘ [ERROR] second\n\n"}}
	require.Equal(t, "✘ [ERROR] first\n\n✘ [ERROR] second", d.Error())
}
