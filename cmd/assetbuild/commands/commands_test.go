package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	dir        string
	configPath string
	srcDir     string
	outDir     string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := &cliEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "assetbuild.yaml"),
		srcDir:     filepath.Join(dir, "web"),
		outDir:     filepath.Join(dir, "dist"),
	}
	require.NoError(t, os.MkdirAll(env.srcDir, 0o755))
	env.writeSource(t, "app.js", "console.log('hello from app');\n")
	env.writeSource(t, "styles.css", "/* theme */\nbody {\n  margin: 0;\n}\n")
	env.writeSource(t, "index.html", "<html><head><link href=\"styles.css\"></head><body><script src=\"app.js\"></script></body></html>\n")

	cfg := fmt.Sprintf("source_dir: %s\noutput_dir: %s\nmetrics:\n  textfile: %s\nreport:\n  file: %s\n",
		env.srcDir, env.outDir, filepath.Join(dir, "assetbuild.prom"), filepath.Join(dir, "report.json"))
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0o644))
	return env
}

func (e *cliEnv) writeSource(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.srcDir, name), []byte(content), 0o644))
}

func (e *cliEnv) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestBuildCommand(t *testing.T) {
	env := newCLIEnv(t)

	code, stdout, stderr := env.run("-c", env.configPath, "build")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "Built 3 files in "+env.outDir)
	for _, name := range []string{"app.min.js", "styles.min.css", "index.html"} {
		require.Contains(t, stdout, "  "+name+"  ")
		require.FileExists(t, filepath.Join(env.outDir, name))
	}

	css, err := os.ReadFile(filepath.Join(env.outDir, "styles.min.css"))
	require.NoError(t, err)
	require.Equal(t, "body{margin:0;}", string(css))

	prom, err := os.ReadFile(filepath.Join(env.dir, "assetbuild.prom"))
	require.NoError(t, err)
	require.Contains(t, string(prom), `assetbuild_build_outcomes_total{outcome="success"} 1`)

	data, err := os.ReadFile(filepath.Join(env.dir, "report.json"))
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	require.Equal(t, "success", report["outcome"])
	require.Equal(t, "done", report["state"])
}

func TestBuildIsDefaultCommand(t *testing.T) {
	env := newCLIEnv(t)

	code, stdout, stderr := env.run("-c", env.configPath)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "Built 3 files")
}

func TestBuildCommandMissingEntry(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.Remove(filepath.Join(env.srcDir, "app.js")))

	code, stdout, stderr := env.run("-c", env.configPath, "build")
	require.Equal(t, 9, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "compile: script compilation failed")
	require.NoFileExists(t, filepath.Join(env.outDir, "styles.min.css"))
	require.NoFileExists(t, filepath.Join(env.outDir, "index.html"))

	data, err := os.ReadFile(filepath.Join(env.dir, "report.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"outcome": "failed"`)
	require.Contains(t, string(data), `"failed_stage": "compile_script"`)
}

func TestBuildCommandOverrides(t *testing.T) {
	env := newCLIEnv(t)
	other := filepath.Join(env.dir, "public")

	code, _, stderr := env.run("-c", env.configPath, "build", "--output", other)
	require.Equal(t, 0, code, stderr)
	require.FileExists(t, filepath.Join(other, "index.html"))
	require.NoDirExists(t, env.outDir)

	code, _, _ = env.run("-c", env.configPath, "build", "--output", env.srcDir)
	require.Equal(t, 2, code)
}

func TestVerifyCommand(t *testing.T) {
	env := newCLIEnv(t)
	code, _, stderr := env.run("-c", env.configPath, "build")
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := env.run("-c", env.configPath, "verify")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "ok       /static/styles.min.css")
	require.Contains(t, stdout, "ok       /static/app.min.js")
	require.Regexp(t, `(?m)^build    \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, stdout)

	require.NoError(t, os.Remove(filepath.Join(env.outDir, "app.min.js")))
	code, stdout, stderr = env.run("-c", env.configPath, "verify")
	require.Equal(t, 2, code)
	require.Contains(t, stdout, "missing  /static/app.min.js")
	require.Contains(t, stderr, "validation: page references missing assets")
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetbuild.yaml")
	var stdout, stderr bytes.Buffer

	code := Execute(context.Background(), []string{"-c", path, "init"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), "Wrote configuration to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "static_prefix: /static/"))

	stderr.Reset()
	code = Execute(context.Background(), []string{"-c", path, "init"}, &stdout, &stderr)
	require.Equal(t, 7, code)
	require.Contains(t, stderr.String(), "already exists")

	code = Execute(context.Background(), []string{"-c", path, "init", "--force"}, &stdout, &stderr)
	require.Equal(t, 0, code)
}

func TestMissingExplicitConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"-c", filepath.Join(t.TempDir(), "nope.yaml"), "build"}, &stdout, &stderr)
	require.Equal(t, 7, code)
	require.Contains(t, stderr.String(), "configuration file not found")
}

func TestVersionFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), []string{"--version"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "assetbuild unknown")
}
