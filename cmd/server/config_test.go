package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/guardrail/pkg/uploadguard"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guardrail.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := loadServerConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.Throttle.MaxMessages)
	assert.Equal(t, time.Second, cfg.Throttle.WindowDuration())
	assert.Equal(t, uploadguard.DefaultPolicy(), cfg.UploadPolicy)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadServerConfig_File(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")

	path := writeConfig(t, `
port: "9090"
throttle:
  window: 2s
  max_messages: 3
upload_policy:
  max_size_bytes: 1024
redis:
  addr: localhost:6379
  ttl: 30s
`)

	cfg, err := loadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.Throttle.MaxMessages)
	assert.Equal(t, 2*time.Second, cfg.Throttle.WindowDuration())
	assert.Equal(t, int64(1024), cfg.UploadPolicy.MaxSizeBytes)
	assert.Equal(t, uploadguard.DefaultPolicy().AllowedMimeTypes, cfg.UploadPolicy.AllowedMimeTypes)

	ttl, err := cfg.Redis.ttl()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, ttl)
}

func TestLoadServerConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("REDIS_ADDR", "redis:6379")

	path := writeConfig(t, "port: \"9090\"\nredis:\n  addr: localhost:6379\n")

	cfg, err := loadServerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")

	tests := []struct {
		name    string
		content string
	}{
		{name: "bad window", content: "throttle:\n  window: soon\n"},
		{name: "bad policy", content: "upload_policy:\n  max_size_bytes: -1\n"},
		{name: "bad redis ttl", content: "redis:\n  ttl: forever\n"},
		{name: "bad yaml", content: "port: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadServerConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := loadServerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
