package config

import (
	"strings"

	"github.com/arthur-debert/omnipak/pkg/area"
	"github.com/arthur-debert/omnipak/pkg/errors"
)

// Config is the complete run configuration.
type Config struct {
	Executable string      `koanf:"executable" toml:"executable"`
	Merge      MergeConfig `koanf:"merge" toml:"merge"`
	Paths      PathsConfig `koanf:"paths" toml:"paths"`
	Index      IndexConfig `koanf:"index" toml:"index"`

	// Source is the config file that was loaded, empty when none was found.
	Source string `koanf:"-" toml:"-"`
}

// MergeConfig tunes the merge.
type MergeConfig struct {
	AreaSize         int      `koanf:"area_size" toml:"area_size"`
	Accuracy         int      `koanf:"accuracy" toml:"accuracy"`
	BinaryExtensions []string `koanf:"binary_extensions" toml:"binary_extensions"`
	OutputName       string   `koanf:"output_name" toml:"output_name"`
	Reports          bool     `koanf:"reports" toml:"reports"`
	ValidateXML      bool     `koanf:"validate_xml" toml:"validate_xml"`
	Password         string   `koanf:"password" toml:"password,omitempty"`
}

// PathsConfig overrides directories otherwise derived from the executable.
type PathsConfig struct {
	Mods      string `koanf:"mods" toml:"mods,omitempty"`
	Reports   string `koanf:"reports" toml:"reports,omitempty"`
	Logs      string `koanf:"logs" toml:"logs,omitempty"`
	LoadOrder string `koanf:"load_order" toml:"load_order,omitempty"`
}

// IndexConfig configures the search index.
type IndexConfig struct {
	OverridesFile string `koanf:"overrides_file" toml:"overrides_file,omitempty"`
}

// AreaOptions returns the matcher options, normalized.
func (c *Config) AreaOptions() area.Options {
	return area.Options{Size: c.Merge.AreaSize, Accuracy: c.Merge.Accuracy}.Normalize()
}

// Validate checks the values that have no usable default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Executable) == "" {
		return errors.New(errors.ErrConfigValid, "executable is not set").
			WithDetail("key", "executable").
			WithDetail("source", c.Source)
	}
	if c.Merge.AreaSize < 1 {
		return errors.Newf(errors.ErrConfigValid, "merge.area_size must be positive, got %d", c.Merge.AreaSize).
			WithDetail("key", "merge.area_size")
	}
	if c.Merge.Accuracy < 1 {
		return errors.Newf(errors.ErrConfigValid, "merge.accuracy must be positive, got %d", c.Merge.Accuracy).
			WithDetail("key", "merge.accuracy")
	}
	name := strings.TrimSpace(c.Merge.OutputName)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrConfigValid, "merge.output_name must be a plain file name, got %q", c.Merge.OutputName).
			WithDetail("key", "merge.output_name")
	}
	return nil
}
