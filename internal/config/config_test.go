package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "deploy-targets", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Encoding)
	assert.Equal(t, "stderr", cfg.Logger.Output)
	assert.Equal(t, ".env", cfg.Env.File)
	assert.Equal(t, time.Duration(0), cfg.Cache.GetDefaultExpiration())
	assert.Equal(t, 10*time.Minute, cfg.Cache.GetCleanupInterval())
	assert.True(t, cfg.Probe.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Probe.GetTimeout())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
server:
  port: "9090"
logger:
  level: debug
env:
  file: secrets/.env.goerli
cache:
  default_expiration: 30s
probe:
  enabled: false
  timeout: 2s
`), 0o600))

	t.Setenv("DEPLOY_TARGETS_SERVER_PORT", "7070")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port, "environment overrides the file")
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "secrets/.env.goerli", cfg.Env.File)
	assert.Equal(t, 30*time.Second, cfg.Cache.GetDefaultExpiration())
	assert.False(t, cfg.Probe.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Probe.GetTimeout())
	assert.Equal(t, "json", cfg.Logger.Encoding)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unterminated"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}
