package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.False(t, cfg.Metrics)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either a feed or a snapshot is required")
}

func TestLoad_File(t *testing.T) {
	feed := writeFile(t, "building.yaml", "name: X\n")
	path := writeFile(t, "wayfind.yaml",
		"feed: "+feed+"\nsnapshot: out.wfs\nlog_level: debug\nworkers: 3\nmetrics: true\n")

	t.Setenv(EnvFeed, "")
	t.Setenv(EnvSnapshot, "")
	t.Setenv(EnvWorkers, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, feed, cfg.FeedPath)
	assert.Equal(t, "out.wfs", cfg.SnapshotPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Metrics)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", "\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "feed: [unterminated"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "unknown.yaml", "feeds: a.yaml\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feeds")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.FeedPath = "file.yaml"

	err := cfg.ApplyEnv(env(map[string]string{
		EnvFeed:     "env.yaml",
		EnvSnapshot: "env.wfs",
		EnvLogLevel: " WARN ",
		EnvWorkers:  "16",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env.yaml", cfg.FeedPath)
	assert.Equal(t, "env.wfs", cfg.SnapshotPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 16, cfg.Workers)
}

func TestApplyEnv_EmptyValuesAreIgnored(t *testing.T) {
	cfg := Default()
	cfg.FeedPath = "file.yaml"

	require.NoError(t, cfg.ApplyEnv(env(map[string]string{EnvFeed: ""})))
	assert.Equal(t, "file.yaml", cfg.FeedPath)
}

func TestApplyEnv_BadWorkers(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(env(map[string]string{EnvWorkers: "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvWorkers)
}

func TestValidate(t *testing.T) {
	feed := writeFile(t, "building.yaml", "name: X\n")
	dir := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"feed only", func(c *Config) { c.FeedPath = feed }, ""},
		{"feed with unwritten snapshot", func(c *Config) {
			c.FeedPath = feed
			c.SnapshotPath = filepath.Join(dir, "new.wfs")
		}, ""},
		{"missing snapshot", func(c *Config) { c.SnapshotPath = filepath.Join(dir, "gone.wfs") }, "snapshot"},
		{"feed is a directory", func(c *Config) { c.FeedPath = dir }, "is a directory"},
		{"bad level", func(c *Config) {
			c.FeedPath = feed
			c.LogLevel = "loud"
		}, "log_level"},
		{"zero workers", func(c *Config) {
			c.FeedPath = feed
			c.Workers = 0
		}, "workers"},
		{"too many workers", func(c *Config) {
			c.FeedPath = feed
			c.Workers = 1 << 20
		}, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Config{LogLevel: "loud", Workers: -1}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 errors")
}
