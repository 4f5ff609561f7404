package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"rill/internal/hints"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Hints   hintsConfig   `toml:"hints"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

// hintsConfig mirrors the [hints] table of rill.toml. Pointer fields
// distinguish "not set" from an explicit false/zero.
type hintsConfig struct {
	TypeHints      *bool    `toml:"type_hints"`
	ParameterHints *bool    `toml:"parameter_hints"`
	ChainingHints  *bool    `toml:"chaining_hints"`
	MaxLength      *int     `toml:"max_length"`
	ObviousParams  []string `toml:"obvious_params"`
}

// apply overlays the manifest's explicit settings onto cfg.
func (hc hintsConfig) apply(cfg *hints.Config) {
	if hc.TypeHints != nil {
		cfg.TypeHints = *hc.TypeHints
	}
	if hc.ParameterHints != nil {
		cfg.ParameterHints = *hc.ParameterHints
	}
	if hc.ChainingHints != nil {
		cfg.ChainingHints = *hc.ChainingHints
	}
	if hc.MaxLength != nil {
		cfg.MaxLength = *hc.MaxLength
	}
	if hc.ObviousParams != nil {
		cfg.ObviousParams = hc.ObviousParams
	}
}

// findRillToml walks up from startDir looking for rill.toml.
func findRillToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "rill.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest finds and decodes the nearest rill.toml above
// startDir. The second result reports whether one exists.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findRillToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", manifestPath, err)
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}
