// Package commands implements the assetbuild command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/assetbuild/internal/config"
	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/assetbuild/internal/version"
)

// Global carries the output streams shared by all commands.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"assetbuild.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" default:"withargs" help:"Compile the script, minify the stylesheet and rewrite the page (default)"`
	Verify VerifyCmd `cmd:"" help:"Check that the built page only references assets present in the output directory"`
	Init   InitCmd   `cmd:"" help:"Write a configuration file with the default settings"`

	stderr io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration named by --config. The default path may
// be absent, in which case the built-in defaults apply.
func (c *CLI) LoadConfig() (*config.Config, error) {
	return config.Load(c.Config, c.Config == config.DefaultPath)
}

type exitCode int

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	cli := &CLI{stderr: stderr}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	parser, err := kong.New(cli,
		kong.Name("assetbuild"),
		kong.Description("Build minified web assets and a rewritten HTML page."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "assetbuild: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "assetbuild: error: %v\n", err)
		return 2
	}

	if err := kctx.Run(&Global{Stdout: stdout, Stderr: stderr}, cli); err != nil {
		return errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithOutput(stderr).Report(err)
	}
	return 0
}
