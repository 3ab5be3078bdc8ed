// Package config holds runtime settings of the lineage engine and the logger factory.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxDepth bounds how many functions a trace may walk through
	DefaultMaxDepth = 256
	// DefaultParallelism bounds how many traces run at once
	DefaultParallelism = 4
)

// ErrConfig is returned when a configuration cannot be read or is invalid
var ErrConfig = errors.New("invalid config")

// Config represents engine settings
type Config struct {
	MaxDepth        int    `yaml:"maxDepth,omitempty"`
	CheckDuplicates bool   `yaml:"checkDuplicates,omitempty"`
	Parallelism     int    `yaml:"parallelism,omitempty"`
	ExportURL       string `yaml:"exportURL,omitempty"`
	LogLevel        string `yaml:"logLevel,omitempty"`
	LogFormat       string `yaml:"logFormat,omitempty"`
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:    DefaultMaxDepth,
		Parallelism: DefaultParallelism,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Init replaces zero values with defaults
func (c *Config) Init() {
	defaults := DefaultConfig()
	if c.MaxDepth == 0 {
		c.MaxDepth = defaults.MaxDepth
	}
	if c.Parallelism == 0 {
		c.Parallelism = defaults.Parallelism
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
}

// Validate checks settings
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: maxDepth was negative: %d", ErrConfig, c.MaxDepth)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism was negative: %d", ErrConfig, c.Parallelism)
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("%w: unsupported logLevel: %q", ErrConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unsupported logFormat: %q", ErrConfig, c.LogFormat)
	}
	return nil
}

// Logger creates a logger writing to w with the configured level and format
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return NewLogger(c.LogLevel, c.LogFormat, w)
}

// Parse decodes yaml settings, unset fields take their default
func Parse(data []byte) (*Config, error) {
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	ret.Init()
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Load reads yaml settings from any URL supported by afs
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load %v: %v", ErrConfig, URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", URL, err)
	}
	return ret, nil
}

// Save writes settings as yaml to any URL supported by afs
func (c *Config) Save(ctx context.Context, URL string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	fs := afs.New()
	if err = fs.Upload(ctx, URL, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save %v: %w", URL, err)
	}
	return nil
}
