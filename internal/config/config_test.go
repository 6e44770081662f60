package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	cfg, err := load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	dataDir := filepath.Join(xdg, "dues")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join(dataDir, "dues.db"), cfg.SQLitePath)
	assert.Equal(t, filepath.Join(dataDir, "dues.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "dues:", cfg.Redis.Prefix)
	assert.True(t, cfg.DeriveOverdue)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("DUES_BACKEND", "memory")
	t.Setenv("DUES_LOG_LEVEL", "debug")
	t.Setenv("DUES_DERIVE_OVERDUE", "false")

	cfg, err := load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.DeriveOverdue)
}

func TestLoadConfigFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)
	dataDir := filepath.Join(xdg, "dues")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "config.yaml"),
		[]byte("backend: redis\nredis_addr: cache:6380\nredis_db: 2\n"), 0644))

	cfg, err := load(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.Address)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Cleanup(func() { os.Unsetenv("DUES_REDIS_PREFIX") })

	dotEnv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotEnv, []byte("DUES_REDIS_PREFIX=uni:\n"), 0644))

	cfg, err := load(dotEnv)
	require.NoError(t, err)
	assert.Equal(t, "uni:", cfg.Redis.Prefix)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "sqlite", cfg: Config{Backend: BackendSQLite}},
		{name: "memory", cfg: Config{Backend: BackendMemory}},
		{name: "postgres with dsn", cfg: Config{Backend: BackendPostgres, PostgresDSN: "postgres://localhost/dues"}},
		{name: "postgres without dsn", cfg: Config{Backend: BackendPostgres}, wantErr: true},
		{name: "redis without address", cfg: Config{Backend: BackendRedis}, wantErr: true},
		{name: "unknown", cfg: Config{Backend: "localStorage"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
