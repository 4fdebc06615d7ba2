package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:   ServerConfig{Port: 8080, Mode: "release", MaxUploadBytes: 1 << 20},
		Log:      LogConfig{Level: "info", Format: "json"},
		Analysis: AnalysisConfig{Timeout: time.Second, BreakerFailures: 3},
		Calendar: CalendarConfig{DefaultDays: 30, MaxDays: 90},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"no upload budget", func(c *Config) { c.Server.MaxUploadBytes = 0 }},
		{"zero timeout", func(c *Config) { c.Analysis.Timeout = 0 }},
		{"zero breaker", func(c *Config) { c.Analysis.BreakerFailures = 0 }},
		{"zero days", func(c *Config) { c.Calendar.DefaultDays = 0 }},
		{"max below default", func(c *Config) { c.Calendar.MaxDays = 10 }},
		{"max beyond a year", func(c *Config) { c.Calendar.MaxDays = 1000 }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad gin mode", func(c *Config) { c.Server.Mode = "production" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAnalysisEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.AnalysisEnabled())

	cfg.Gemini.APIKey = "key"
	assert.False(t, cfg.AnalysisEnabled())

	cfg.Storage.Bucket = "bucket"
	assert.True(t, cfg.AnalysisEnabled())
}

func TestStoriesEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.StoriesEnabled())

	cfg.Gemini.APIKey = "key"
	assert.True(t, cfg.StoriesEnabled())
	assert.False(t, cfg.AnalysisEnabled())
}

func TestLoad_FromYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 9090\ncalendar:\n  default_days: 14\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 14, cfg.Calendar.DefaultDays)
	assert.Equal(t, 90, cfg.Calendar.MaxDays)
	assert.Equal(t, "from-env", cfg.Gemini.APIKey)
	assert.Equal(t, 45*time.Second, cfg.Analysis.Timeout)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
