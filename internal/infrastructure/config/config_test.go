package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strengthscope/backend/internal/infrastructure/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Setenv("SHUTDOWN_TIMEOUT", "10s")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"DATABASE_PATH", "CATALOG_DIR", "PAIR_REBUILDS", "ATTEMPT_CACHE_SIZE", "PERSIST_WORKERS"} {
		t.Setenv(k, "")
	}

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "strengths.db", cfg.DatabasePath)
	assert.Equal(t, "", cfg.CatalogDir)
	assert.Equal(t, 10, cfg.PairRebuilds)
	assert.Equal(t, 512, cfg.AttemptCacheSize)
	assert.Equal(t, 2, cfg.PersistWorkers)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_PATH", "/tmp/s.db")
	t.Setenv("CATALOG_DIR", "/etc/strengths")
	t.Setenv("PAIR_REBUILDS", "0")
	t.Setenv("ATTEMPT_CACHE_SIZE", "64")
	t.Setenv("PERSIST_WORKERS", "4")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/s.db", cfg.DatabasePath)
	assert.Equal(t, "/etc/strengths", cfg.CatalogDir)
	assert.Equal(t, 0, cfg.PairRebuilds)
	assert.Equal(t, 64, cfg.AttemptCacheSize)
	assert.Equal(t, 4, cfg.PersistWorkers)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing address", map[string]string{"SERVER_ADDRESS": "", "SHUTDOWN_TIMEOUT": "5s"}},
		{"missing timeout", map[string]string{"SERVER_ADDRESS": ":1", "SHUTDOWN_TIMEOUT": ""}},
		{"bad timeout", map[string]string{"SERVER_ADDRESS": ":1", "SHUTDOWN_TIMEOUT": "soon"}},
		{"bad rebuilds", map[string]string{"SERVER_ADDRESS": ":1", "SHUTDOWN_TIMEOUT": "5s", "PAIR_REBUILDS": "-1"}},
		{"bad cache size", map[string]string{"SERVER_ADDRESS": ":1", "SHUTDOWN_TIMEOUT": "5s", "ATTEMPT_CACHE_SIZE": "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PAIR_REBUILDS", "")
			t.Setenv("ATTEMPT_CACHE_SIZE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.FromEnv()
			assert.Error(t, err)
		})
	}
}
