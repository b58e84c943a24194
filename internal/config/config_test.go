package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/remindkit/mcp-reminders/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := config.Load("")
	assert.Nil(err)
	assert.Equal("info", cfg.Log.Level)
	assert.Equal("", cfg.Log.File)
	assert.Equal(20, cfg.Pagination.DefaultLimit)
	assert.True(cfg.Access.RequestOnStart)
	assert.Nil(cfg.Validate())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := config.Load("/nonexistent/path/config.yaml")
	assert.Nil(err)
	assert.Equal("info", cfg.Log.Level)
}

func TestLoadYAMLFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
log:
  level: debug
pagination:
  default_limit: 5
access:
  request_on_start: false
`
	assert.Nil(os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	assert.Nil(err)
	assert.Equal("debug", cfg.Log.Level)
	assert.Equal(5, cfg.Pagination.DefaultLimit)
	assert.False(cfg.Access.RequestOnStart)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.Nil(os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	t.Setenv("REMINDERS_LOG__LEVEL", "warn")
	t.Setenv("REMINDERS_PAGINATION__DEFAULT_LIMIT", "50")

	cfg, err := config.Load(path)
	assert.Nil(err)
	assert.Equal("warn", cfg.Log.Level)
	assert.Equal(50, cfg.Pagination.DefaultLimit)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	assert := assert.New(t)

	cfg, err := config.Load("")
	assert.Nil(err)

	cfg.Log.Level = "verbose"
	assert.NotNil(cfg.Validate())
}
