package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withJSONConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-c", path}
}

func TestParseJsonOverlays(t *testing.T) {
	withJSONConfig(t, `{
		"database_dsn": "postgres://json-host/db",
		"cache_db_path": "json.db",
		"seed_jitter_min": "50ms",
		"seed_jitter_max": 200000000
	}`)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "postgres://json-host/db", cfg.DatabaseDSN)
	assert.Equal(t, "json.db", cfg.CacheDBPath)
	assert.Equal(t, 50*time.Millisecond, cfg.SeedJitterMin)
	assert.Equal(t, 200*time.Millisecond, cfg.SeedJitterMax)
	// absent fields keep defaults
	assert.NotEmpty(t, cfg.AuthBaseURL)
}

func TestParseJsonNoFileFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseJson(cfg)
	assert.Equal(t, before, *cfg)
}

func TestParseJsonBadFilePanics(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-c", "/no/such/file.json"}

	cfg := &Config{}
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJson(cfg) })
}

func TestParseJsonInvalidJSONPanics(t *testing.T) {
	withJSONConfig(t, `{not json`)

	cfg := &Config{}
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJson(cfg) })
}
