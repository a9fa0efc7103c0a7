package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"evote-cli"}

	t.Setenv("EVOTE_DATA_DIR", "/tmp/evote")
	t.Setenv("EVOTE_ONLINE_CHECK_INTERVAL", "1m")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "/tmp/evote", cfg.DataDir)
	assert.Equal(t, time.Minute, cfg.OnlineCheckInterval)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Empty(t, cfg.AccessToken)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EVOTE_TOKEN=from-file\n"), 0o600))
	t.Setenv("EVOTE_TOKEN", "")
	os.Unsetenv("EVOTE_TOKEN")

	os.Args = []string{"evote-cli", "-env", path}
	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "from-file", cfg.AccessToken)
}

func TestParseEnv_BadInterval(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"evote-cli"}

	t.Setenv("EVOTE_ONLINE_CHECK_INTERVAL", "often")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
