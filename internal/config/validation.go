package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/assetbuild/internal/compiler"
	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
)

// Validate checks a configuration that already has defaults applied.
func Validate(cfg *Config) error {
	if err := validateArtifactNames(cfg); err != nil {
		return err
	}
	if err := validateStaticPrefix(cfg.StaticPrefix); err != nil {
		return err
	}
	if _, err := compiler.ParseTarget(cfg.Script.Target); err != nil {
		return invalid("script.target", err.Error())
	}
	if filepath.Clean(cfg.OutputDir) == filepath.Clean(cfg.SourceDir) {
		return invalid("output_dir", "must differ from source_dir")
	}
	return nil
}

// validateArtifactNames ensures every output is a plain file name so all
// artifacts land in one flat directory, and that no two outputs collide.
func validateArtifactNames(cfg *Config) error {
	outputs := []struct{ field, name string }{
		{"script.output", cfg.Script.Output},
		{"stylesheet.output", cfg.Stylesheet.Output},
		{"page.output", cfg.Page.Output},
	}
	seen := make(map[string]string, len(outputs))
	for _, o := range outputs {
		if strings.ContainsAny(o.name, `/\`) || o.name == "." || o.name == ".." {
			return invalid(o.field, fmt.Sprintf("%q must be a file name without directories", o.name))
		}
		if prev, ok := seen[o.name]; ok {
			return invalid(o.field, fmt.Sprintf("%q is already used by %s", o.name, prev))
		}
		seen[o.name] = o.field
	}
	return nil
}

// validateStaticPrefix accepts only a site-relative path. Absolute URLs
// and scheme-relative hosts are rejected instead of being turned into paths.
func validateStaticPrefix(prefix string) error {
	switch {
	case strings.Contains(prefix, "://"):
		return invalid("static_prefix", fmt.Sprintf("%q must be a path, not a URL", prefix))
	case strings.HasPrefix(prefix, "//"):
		return invalid("static_prefix", fmt.Sprintf("%q must not name a host", prefix))
	case strings.ContainsAny(prefix, "?# \t\r\n"):
		return invalid("static_prefix", fmt.Sprintf("%q must not contain a query, fragment or whitespace", prefix))
	}
	return nil
}

func invalid(field, reason string) error {
	return errors.ValidationError("invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason).
		Build()
}
