// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the rewrite settings for one tool. Pointer fields distinguish
// "not set" from an explicit empty value.
type Config struct {
	PatchIdentifiers []string `toml:"patch_identifiers" yaml:"patch_identifiers"`
	BranchIdentifier *string  `toml:"branch_identifier" yaml:"branch_identifier"`
	FallbackBranch   *string  `toml:"fallback_branch" yaml:"fallback_branch"`
}

// File is the on-disk layout: one table per tool name.
//
//	[update-sim-version]
//	patch_identifiers = ["SIM_PATCH_LEVEL"]
//	branch_identifier = "SIM_GIT_BRANCH"
//	fallback_branch   = "Unknown"
type File map[string]Config

// Str returns a pointer to s, for building defaults.
func Str(s string) *string { return &s }

// DefaultPath is ~/.config/patchlevel/config.toml, or "" if the home
// directory is unknown.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("Could not determine user home directory. Using default settings only.", "error", err)
		return ""
	}
	return filepath.Join(homeDir, ".config", "patchlevel", "config.toml")
}

// Load reads the table for tool from customPath, or from DefaultPath when
// customPath is empty, and fills unset fields from defaults. A missing default
// file is not an error; a missing custom file is.
func Load(customPath, tool string, defaults Config) (Config, error) {
	base := merge(Config{}, defaults)
	isCustomPath := customPath != ""
	var configFile string
	if isCustomPath {
		abs, err := filepath.Abs(customPath)
		if err != nil {
			return base, fmt.Errorf("invalid custom config path '%s': %w", customPath, err)
		}
		configFile = abs
	} else {
		configFile = DefaultPath()
		if configFile == "" {
			return base, nil
		}
	}

	slog.Debug("Reading configuration file", "path", configFile)
	content, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if isCustomPath {
				return base, fmt.Errorf("specified configuration file '%s' not found", configFile)
			}
			slog.Debug("No default config file found, using default settings.", "path", configFile)
			return base, nil
		}
		return base, fmt.Errorf("error reading config file '%s': %w", configFile, err)
	}

	if len(bytes.TrimSpace(content)) == 0 {
		slog.Info("Configuration file is empty, using default settings.", "path", configFile)
		return base, nil
	}

	file, err := decode(configFile, content)
	if err != nil {
		return base, err
	}

	loaded, ok := file[tool]
	if !ok {
		slog.Debug("No section for tool in config file, using default settings.", "path", configFile, "tool", tool)
		return base, nil
	}

	cfg := merge(loaded, base)
	slog.Debug("Configuration loaded successfully.",
		"source", configFile,
		"tool", tool,
		"patch_identifiers", cfg.PatchIdentifiers,
		"branch_identifier", *cfg.BranchIdentifier,
		"fallback_branch", *cfg.FallbackBranch,
	)
	return cfg, nil
}

func decode(configFile string, content []byte) (File, error) {
	var file File
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("error decoding YAML from '%s': %w", configFile, err)
		}
	default:
		meta, err := toml.Decode(string(content), &file)
		if err != nil {
			return nil, fmt.Errorf("error decoding TOML from '%s': %w", configFile, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			slog.Warn("Unrecognized keys found in config file.", "path", configFile, "keys", undecoded)
		}
	}
	return file, nil
}

// merge fills every unset field of loaded from defaults.
func merge(loaded, defaults Config) Config {
	cfg := loaded
	if cfg.PatchIdentifiers == nil {
		cfg.PatchIdentifiers = defaults.PatchIdentifiers
	}
	if cfg.BranchIdentifier == nil {
		cfg.BranchIdentifier = defaults.BranchIdentifier
	}
	if cfg.BranchIdentifier == nil {
		cfg.BranchIdentifier = Str("")
	}
	if cfg.FallbackBranch == nil {
		cfg.FallbackBranch = defaults.FallbackBranch
	}
	if cfg.FallbackBranch == nil {
		cfg.FallbackBranch = Str("")
	}
	return cfg
}
