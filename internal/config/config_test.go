package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CAMPUSBOARD_CONFIG", "")
	t.Setenv("CAMPUSBOARD_DOTENV", filepath.Join(dir, "missing.env"))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond, cfg.Counter.CompactDuration)
	require.Equal(t, 2000*time.Millisecond, cfg.Counter.HeroDuration)
	require.Equal(t, "quart", cfg.Counter.Easing)
	require.Equal(t, "en", cfg.Counter.Locale)
	require.Equal(t, "light", cfg.UI.Theme)
	require.Equal(t, "admin", cfg.UI.Role)
	require.Equal(t, 60, cfg.UI.FPS)
	require.Equal(t, 5*time.Second, cfg.UI.RefreshInterval)
	require.Equal(t, filepath.Join(dir, ".local", "share", "campusboard", "campusboard.db"), cfg.Database.Path)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[counter]
compact_duration = "1200ms"
easing = "linear"

[ui]
theme = "ocean"
fps = 30
`), 0o600))
	t.Setenv("CAMPUSBOARD_CONFIG", path)
	t.Setenv("CAMPUSBOARD_UI_ROLE", "hod")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1200*time.Millisecond, cfg.Counter.CompactDuration)
	require.Equal(t, "linear", cfg.Counter.Easing)
	require.Equal(t, "ocean", cfg.UI.Theme)
	require.Equal(t, 30, cfg.UI.FPS)
	require.Equal(t, "hod", cfg.UI.Role)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("CAMPUSBOARD_UI_THEME=green\n"), 0o600))
	t.Setenv("CAMPUSBOARD_DOTENV", envPath)
	// godotenv never overrides variables that are already set
	t.Setenv("CAMPUSBOARD_UI_THEME", "")
	require.NoError(t, os.Unsetenv("CAMPUSBOARD_UI_THEME"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "green", cfg.UI.Theme)
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("CAMPUSBOARD_UI_FPS", "0")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config")
}

func TestValidate(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)

	bad := cfg
	bad.Counter.HeroDuration = 0
	require.Error(t, Validate(bad))

	bad = cfg
	bad.UI.Theme = "neon"
	require.Error(t, Validate(bad))

	bad = cfg
	bad.Counter.Easing = "bounce"
	require.Error(t, Validate(bad))

	bad = cfg
	bad.Log.Level = "loud"
	require.Error(t, Validate(bad))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "saved", "config.toml")
	t.Setenv("CAMPUSBOARD_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.UI.Theme = "blue"
	cfg.Counter.HeroDuration = 2500 * time.Millisecond
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, "blue", again.UI.Theme)
	require.Equal(t, 2500*time.Millisecond, again.Counter.HeroDuration)
}
