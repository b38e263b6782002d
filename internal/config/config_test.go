package config_test

import (
	"idresolve/internal/config"
	"idresolve/pkg/serrors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_ID", "")

	cfg, err := config.Load("missing.yml")
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "https://www.instagram.com", cfg.Instagram.WebBaseURL)
	require.Equal(t, "https://i.instagram.com/api/v1", cfg.Instagram.APIBaseURL)
	require.Equal(t, "4", cfg.Instagram.SigKeyVersion)
	require.InDelta(t, 1.0, cfg.Instagram.RatePerSecond, 0)
	require.Equal(t, 3, cfg.Instagram.LookupMaxRetries)
	require.Equal(t, 30*time.Second, cfg.Instagram.RequestTimeout)
	require.Zero(t, cfg.Pipeline.Delay)

	require.ErrorIs(t, cfg.RequireSession(), serrors.ErrConfig)
	require.ErrorIs(t, cfg.RequireSigning(), serrors.ErrConfig)
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
session:
  id: from-yaml
instagram:
  sigKey: yaml-key
  ratePerSecond: 0.5
pipeline:
  delay: 2s
`), 0o600))
	t.Setenv("IG_SIG_KEY_VERSION", "5")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "from-yaml", cfg.Session.ID)
	require.Equal(t, "yaml-key", cfg.Instagram.SigKey)
	require.Equal(t, "5", cfg.Instagram.SigKeyVersion)
	require.InDelta(t, 0.5, cfg.Instagram.RatePerSecond, 0)
	require.Equal(t, 2*time.Second, cfg.Pipeline.Delay)
	require.NoError(t, cfg.RequireSession())
	require.NoError(t, cfg.RequireSigning())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SESSION_ID=from-dotenv\n"), 0o600))

	// godotenv never overrides variables that are already set.
	require.NoError(t, os.Unsetenv("SESSION_ID"))
	t.Cleanup(func() { _ = os.Unsetenv("SESSION_ID") })

	cfg, err := config.Load("missing.yml")
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.Session.ID)
}
