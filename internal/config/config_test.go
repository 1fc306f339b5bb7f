package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inEmptyDir runs the test from a fresh directory with no home config, so
// the default search path finds nothing.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "cursor-crisis.log", cfg.Log.File)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.5, cfg.Audio.Volume)
	assert.Equal(t, 60, cfg.Render.FPS)
	assert.Equal(t, 200, cfg.Render.MaxWidth)
	assert.Equal(t, 60, cfg.Render.MaxHeight)
	assert.Zero(t, cfg.Game.Seed)
	assert.Empty(t, cfg.File)
}

func TestLoad_SearchesWorkingDirectory(t *testing.T) {
	dir := inEmptyDir(t)
	yaml := "log:\n  level: debug\nrender:\n  maxWidth: 120\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cursor-crisis.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 120, cfg.Render.MaxWidth)
	assert.Equal(t, 60, cfg.Render.MaxHeight)
	assert.Contains(t, cfg.File, "cursor-crisis.yaml")
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := inEmptyDir(t)
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"audio": {"volume": 0.2}, "game": {"seed": 42}}`), 0o644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, 0.2, cfg.Audio.Volume)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	inEmptyDir(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-c", "/nonexistent/cursor-crisis.yaml"}))

	_, err := Load(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := inEmptyDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cursor-crisis.yaml"), []byte("audio:\n  volume: 0.9\n"), 0o644))
	t.Setenv("CURSOR_CRISIS_AUDIO_VOLUME", "0.25")
	t.Setenv("CURSOR_CRISIS_RENDER_FPS", "30")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Audio.Volume)
	assert.Equal(t, 30, cfg.Render.FPS)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("CURSOR_CRISIS_LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--audio=false", "--seed", "7"}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, int64(7), cfg.Game.Seed)
}

func TestLoad_UnchangedFlagsKeepLowerSources(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("CURSOR_CRISIS_LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Audio:  AudioConfig{Volume: 0.5},
		Render: RenderConfig{FPS: 60, MaxWidth: 200, MaxHeight: 60},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative volume", func(c *Config) { c.Audio.Volume = -0.1 }},
		{"loud volume", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }},
		{"narrow", func(c *Config) { c.Render.MaxWidth = 5 }},
		{"short", func(c *Config) { c.Render.MaxHeight = 5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("CURSOR_CRISIS_AUDIO_VOLUME", "3")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio.volume")
}
