// Package config loads the wayfind runtime configuration from YAML with
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-wayfind/pkg/logging"
	"github.com/dd0wney/cluso-wayfind/pkg/parallel"
	"github.com/dd0wney/cluso-wayfind/pkg/validation"
)

// Environment variables that override file values.
const (
	EnvFeed     = "WAYFIND_FEED"
	EnvSnapshot = "WAYFIND_SNAPSHOT"
	EnvLogLevel = "LOG_LEVEL"
	EnvWorkers  = "WAYFIND_WORKERS"
)

// DefaultWorkers is the batch pool size when none is configured.
const DefaultWorkers = 8

// Config is the runtime configuration shared by the wayfind commands.
type Config struct {
	// FeedPath is a YAML or JSON building feed.
	FeedPath string `yaml:"feed"`
	// SnapshotPath is a linked-graph snapshot. When both are set the feed
	// wins and the snapshot is where new snapshots are written.
	SnapshotPath string `yaml:"snapshot"`
	LogLevel     string `yaml:"log_level"`
	Workers      int    `yaml:"workers"`
	Metrics      bool   `yaml:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Workers:  DefaultWorkers,
	}
}

// Load reads a YAML config file over the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// ApplyEnv overrides fields from the environment. lookup has the shape of
// os.LookupEnv so tests can pass a map.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFeed); ok && v != "" {
		c.FeedPath = v
	}
	if v, ok := lookup(EnvSnapshot); ok && v != "" {
		c.SnapshotPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvWorkers, v)
		}
		c.Workers = n
	}
	return nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Custom("feed", func() error {
			if c.FeedPath == "" && c.SnapshotPath == "" {
				return errors.New("either a feed or a snapshot is required")
			}
			return nil
		}).
		FileExists("feed", c.FeedPath).
		When(c.FeedPath == "", func(cv *validation.ConfigValidator) {
			cv.FileExists("snapshot", c.SnapshotPath)
		}).
		OneOf("log_level", strings.ToLower(c.LogLevel), logging.LevelNames).
		RangeInt("workers", c.Workers, 1, parallel.MaxWorkers).
		Validate()
}

// Logger builds a stderr logger at the configured level.
func (c Config) Logger() logging.Logger {
	return logging.New(os.Stderr, c.LogLevel)
}
