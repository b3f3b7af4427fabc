package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `logLevel: debug
assets:
  baseUrl: https://assets.example.org/
  timeout: 5s
viewer:
  width: 800
  autoRotate: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arviewer.yaml"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, "https://assets.example.org/", GetString("assets.baseUrl"))
	assert.Equal(t, 5*time.Second, GetDuration("assets.timeout"))
	assert.Equal(t, 800, GetInt("viewer.width"))
	assert.Equal(t, 900, GetInt("viewer.height"))
	assert.True(t, GetBool("viewer.autoRotate"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", GetString("logLevel"))
	assert.False(t, GetBool("debug"))
	assert.Equal(t, "", GetString("assets.baseUrl"))
	assert.NotEmpty(t, GetString("assets.cacheDir"))
	assert.Equal(t, 30*time.Second, GetDuration("assets.timeout"))
	assert.Equal(t, 1400, GetInt("viewer.width"))
	assert.Equal(t, 60, GetInt("viewer.fps"))
	assert.False(t, GetBool("viewer.showAllLabels"))
	assert.True(t, GetBool("viewer.watch"))
	assert.Equal(t, "", GetString("session.file"))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("ARVIEWER_LOGLEVEL", "warn")
	t.Setenv("ARVIEWER_VIEWER_FPS", "30")

	require.NoError(t, Load(t.TempDir()))

	assert.Equal(t, "warn", GetString("logLevel"))
	assert.Equal(t, 30, GetInt("viewer.fps"))
}

func TestLoad_DotEnv(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Cleanup(func() { os.Unsetenv("ARVIEWER_DEBUG") })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ARVIEWER_DEBUG=true\n"), 0644))

	require.NoError(t, Load(dir))
	assert.True(t, GetBool("debug"))
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arviewer.yaml"), []byte("viewer: [unclosed"), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
