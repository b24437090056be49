// Package config loads project-level settings for citation
// post-processing. Document-level CLI flags override these values, so a
// project config acts as the enclosing scope a document inherits from.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/loochao/ox-hugo/internal/fileutil"
	"github.com/loochao/ox-hugo/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidFormat   = errors.New("invalid front-matter format")
	ErrInvalidOffset   = errors.New("invalid heading offset")
)

// Config holds project-level settings for the citation pipeline.
type Config struct {
	// PandocCitations enables citation post-processing for exported
	// documents.
	PandocCitations bool `yaml:"pandocCitations"`

	// Bibliography lists bibliography files, comma separated. A
	// per-document --bibliography flag overrides it.
	Bibliography string `yaml:"bibliography"`

	// FrontMatterFormat is the site's native front-matter format:
	// "toml" or "yaml".
	FrontMatterFormat string `yaml:"frontMatterFormat"`

	// HeadingOffset shifts heading nesting depth for exported
	// documents; the synthesized References heading uses it.
	HeadingOffset int `yaml:"headingOffset"`

	// Pandoc is the pandoc executable name or path.
	Pandoc string `yaml:"pandoc"`
}

// DefaultConfig returns the neutral configuration: pipeline disabled,
// TOML front matter, pandoc from PATH.
func DefaultConfig() *Config {
	return &Config{
		FrontMatterFormat: "toml",
		Pandoc:            "pandoc",
	}
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.FrontMatterFormat) {
	case "toml", "yaml":
	default:
		return fmt.Errorf("%w: %q (must be toml or yaml)", ErrInvalidFormat, c.FrontMatterFormat)
	}
	if c.HeadingOffset < 0 {
		return fmt.Errorf("%w: %d (cannot be negative)", ErrInvalidOffset, c.HeadingOffset)
	}
	if c.Pandoc == "" {
		c.Pandoc = "pandoc"
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Missing fields keep their defaults; unknown fields are
// rejected. Returns an error if the file is not found (no silent
// fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/ox-hugo/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "ox-hugo", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
