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
	path := filepath.Join(t.TempDir(), "incorporate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, DriverMemory, cfg.Leads.Driver)
	assert.Equal(t, 30*time.Second, cfg.Store.LockTTL)
	assert.Equal(t, 400*time.Millisecond, cfg.Chat.Pacing)
	assert.Equal(t, "incorporate:session:", cfg.Store.Redis.Prefix)
	assert.False(t, cfg.Store.Redis.NoLocking)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
env: prod
log:
  level: debug
  format: json
listen:
  port: "9200"
store:
  driver: redis
  redis:
    addr: redis:6379
    ttl: 24h
leads:
  driver: mongo
  mongo:
    database: crm
chat:
  pacing: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, DriverMongo, cfg.Leads.Driver)
	assert.Equal(t, "crm", cfg.Leads.Mongo.Database)
	assert.Equal(t, "leads", cfg.Leads.Mongo.Collection)
	assert.Equal(t, time.Second, cfg.Chat.Pacing)
	assert.Equal(t, "127.0.0.1:9200", cfg.Addr())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "store:\n  driver: file\n")
	t.Setenv("INCORPORATE_STORE", "memory")
	t.Setenv("INCORPORATE_PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "7000", cfg.Listen.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"store driver", "store:\n  driver: etcd\n"},
		{"leads driver", "leads:\n  driver: redis\n"},
		{"log format", "log:\n  format: xml\n"},
		{"redact with key", "leads:\n  redact: true\n  encryption_key: abc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_LeadProtection(t *testing.T) {
	path := writeConfig(t, `
leads:
  encryption_key: a2V5
  fallback_keys: [b2xk, b2xkZXI=]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a2V5", cfg.Leads.EncryptionKey)
	assert.Equal(t, []string{"b2xk", "b2xkZXI="}, cfg.Leads.FallbackKeys)
	assert.False(t, cfg.Leads.Redact)
}
