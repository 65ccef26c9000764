package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TENANTADMIN_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, BackendLocal, cfg.Backend.Mode)
	require.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	require.Equal(t, "127.0.0.1:8088", cfg.Server.Addr)
	require.Equal(t, 30, cfg.Server.RegisterRate)
	require.Equal(t, "UTC", cfg.UI.Timezone)
	require.Equal(t, "tenantadmin.db", filepath.Base(cfg.Database.Path))
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[backend]
mode = "http"
base_url = "https://admin.example.test"
timeout = "3s"

[ui]
timezone = "Asia/Kolkata"
`), 0o600))
	t.Setenv("HOME", dir)
	t.Setenv("TENANTADMIN_CONFIG", path)
	t.Setenv("TENANTADMIN_SERVER_REGISTER_RATE", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, BackendHTTP, cfg.Backend.Mode)
	require.Equal(t, "https://admin.example.test", cfg.Backend.BaseURL)
	require.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 5, cfg.Server.RegisterRate)

	loc, err := cfg.UI.Location()
	require.NoError(t, err)
	require.Equal(t, "Asia/Kolkata", loc.String())
}

func TestValidateRejectsBadSettings(t *testing.T) {
	t.Parallel()
	base := Config{Backend: BackendConfig{Mode: BackendLocal}, UI: UIConfig{Timezone: "UTC"}}
	require.NoError(t, base.Validate())

	bad := base
	bad.Backend.Mode = "grpc"
	require.ErrorContains(t, bad.Validate(), "backend.mode")

	bad = base
	bad.UI.Timezone = "Mars/Olympus"
	require.ErrorContains(t, bad.Validate(), "ui.timezone")

	bad = base
	bad.Backend.Mode = BackendHTTP
	require.ErrorContains(t, bad.Validate(), "base_url")
}

func TestBackendToken(t *testing.T) {
	t.Setenv("TA_TEST_TOKEN", "abc")
	require.Equal(t, "abc", BackendConfig{TokenEnv: "TA_TEST_TOKEN"}.Token())
	require.Empty(t, BackendConfig{}.Token())
}
