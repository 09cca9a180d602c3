package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// manifest is an optional skein.toml discovered by walking up from the
// input. It supplies defaults for flags the user did not set:
//
//	[grammar]
//	name = "json"
//	max_depth = 32
//
//	[input]
//	nfc = true
//
//	[output]
//	format = "pretty"
type manifest struct {
	Path   string
	Root   string
	Config manifestConfig
}

type manifestConfig struct {
	Grammar grammarConfig `toml:"grammar"`
	Input   inputConfig   `toml:"input"`
	Output  outputConfig  `toml:"output"`
}

type grammarConfig struct {
	Name     string `toml:"name"`
	MaxDepth int    `toml:"max_depth"`
}

type inputConfig struct {
	NFC bool `toml:"nfc"`
}

type outputConfig struct {
	Format string `toml:"format"`
}

func findSkeinToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "skein.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadManifest(startDir string) (*manifest, bool, error) {
	manifestPath, ok, err := findSkeinToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadManifestConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadManifestConfig(path string) (manifestConfig, error) {
	var cfg manifestConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return manifestConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("grammar", "max_depth") && cfg.Grammar.MaxDepth < 0 {
		return manifestConfig{}, fmt.Errorf("%s: [grammar].max_depth must be positive", path)
	}
	if meta.IsDefined("output", "format") {
		switch cfg.Output.Format {
		case "pretty", "json", "msgpack":
		default:
			return manifestConfig{}, fmt.Errorf("%s: unknown [output].format %q", path, cfg.Output.Format)
		}
	}
	return cfg, nil
}
