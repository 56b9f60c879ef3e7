package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_Validate(t *testing.T) {
	base := Config{
		Port:                 "8390",
		JWTSecret:            "secure-secret-at-least-32-chars-long",
		DBPassword:           "secure-password",
		DBSSLMode:            "require",
		MediaMaxUploadSizeMB: 25,
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid production", func(c *Config) { c.Env = "production" }, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"default jwt secret in prod", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short jwt secret in prod", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"default db password in prod", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"ssl disabled in prod", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"ssl disabled in development", func(c *Config) {
			c.Env = "development"
			c.DBSSLMode = "disable"
		}, false},
		{"zero upload cap", func(c *Config) { c.MediaMaxUploadSizeMB = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")

	dir := t.TempDir()
	raw, err := yaml.Marshal(map[string]any{
		"PORT":                 "9999",
		"FEED_RETENTION_HOURS": 24,
		"DB_SSLMODE":           "  DISABLE  ",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), raw, 0o600))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, 24*time.Hour, c.FeedRetention())
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")

	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8390", c.Port)
	assert.Equal(t, "statusworld", c.DBName)
	assert.Zero(t, c.FeedRetention(), "no override means the policy default applies")
}
