package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  dsn: "host=localhost user=app dbname=cleanops"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 10, cfg.Server.RateLimitPerSec, 1e-9)
	assert.Equal(t, 5, cfg.Server.RateLimitBurst)
	assert.Equal(t, 60, cfg.Server.CacheTTLSeconds)
	assert.Equal(t, "Australia/Melbourne", cfg.Business.Timezone)
	require.NotNil(t, cfg.Business.Location)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Equal(t, 64, cfg.WorkerPool.QueueSize)
	assert.Equal(t, 3600, cfg.Push.TTL)
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  rate_limit_per_sec: 25
  rate_limit_burst: 10
  cache_ttl_seconds: 120
business:
  timezone: "Europe/London"
worker_pool:
  size: 4
  queue_size: 128
push:
  vapid_public_key: "pub"
  vapid_private_key: "priv"
  subject: "mailto:ops@example.com"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "Europe/London", cfg.Business.Timezone)
	assert.Equal(t, "Europe/London", cfg.Business.Location.String())
	assert.Equal(t, 4, cfg.WorkerPool.Size)
	assert.Equal(t, "pub", cfg.Push.PublicKey)
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	path := writeConfig(t, `
business:
  timezone: "Mars/Olympus_Mons"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
