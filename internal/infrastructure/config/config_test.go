package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:8080", cfg.Server.Address())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "DEFAULT", cfg.OCI.Profile)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 10000, cfg.Cache.MaxEntries)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Inventory.MaxConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Inventory.CallTimeout)
	assert.Equal(t, 10.0, cfg.Inventory.RequestsPerSecond)
	assert.Equal(t, 20, cfg.Inventory.Burst)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: 0.0.0.0
oci:
  config_file: /etc/oci/config
  profile: PROD
  region: eu-frankfurt-1
cache:
  type: redis
  redis_addr: redis:6379
  redis_db: 2
  key_prefix: inv
logging:
  level: DEBUG
inventory:
  max_concurrency: 4
  call_timeout: 10s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Address())
	assert.Equal(t, "/etc/oci/config", cfg.OCI.ConfigFile)
	assert.Equal(t, "PROD", cfg.OCI.Profile)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 2, cfg.Cache.RedisDB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Inventory.MaxConcurrency)
	assert.Equal(t, 10*time.Second, cfg.Inventory.CallTimeout)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "cache:\n  type: memory\nserver:\n  port: 9090\n")
	t.Setenv("INVENTORY_SERVER_PORT", "7070")
	t.Setenv("INVENTORY_CACHE_TYPE", "none")
	t.Setenv("INVENTORY_OCI_USE_MOCK", "true")
	t.Setenv("INVENTORY_CALL_TIMEOUT", "45s")
	t.Setenv("INVENTORY_SERVER_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "none", cfg.Cache.Type)
	assert.True(t, cfg.OCI.UseMock)
	assert.Equal(t, 45*time.Second, cfg.Inventory.CallTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestPlainOCIVariablesAreFallback(t *testing.T) {
	t.Setenv("OCI_REGION", "us-ashburn-1")
	t.Setenv("OCI_PROFILE", "PLAIN")
	t.Setenv("INVENTORY_OCI_PROFILE", "PREFIXED")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "us-ashburn-1", cfg.OCI.Region)
	assert.Equal(t, "PREFIXED", cfg.OCI.Profile)
}

func TestRedisDefaultAddress(t *testing.T) {
	t.Setenv("INVENTORY_CACHE_TYPE", "redis")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad cache type", body: "cache:\n  type: memcached\n"},
		{name: "bad log level", body: "logging:\n  level: verbose\n"},
		{name: "port out of range", body: "server:\n  port: 70000\n"},
		{name: "concurrency too high", body: "inventory:\n  max_concurrency: 500\n"},
		{name: "call timeout too short", body: "inventory:\n  call_timeout: 100ms\n"},
		{name: "tracing without endpoint", body: "tracing:\n  enabled: true\n"},
		{name: "partial credentials", body: "oci:\n  tenancy_id: ocid1.tenancy.oc1..x\n  user_id: ocid1.user.oc1..y\n"},
		{name: "unparsable yaml", body: "server: [\n"},
		{name: "bad env integer", env: map[string]string{"INVENTORY_SERVER_PORT": "eighty"}},
		{name: "bad env duration", env: map[string]string{"INVENTORY_CALL_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidateReportsFieldNames(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.Cache.Type = "disk"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.type")
}

func TestDiscreteCredentials(t *testing.T) {
	o := OCIConfig{TenancyID: "t", UserID: "u", Fingerprint: "f", KeyFile: "k"}
	assert.True(t, o.HasDiscreteCredentials())

	o.KeyFile = ""
	assert.False(t, o.HasDiscreteCredentials())
}
