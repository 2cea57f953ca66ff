package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("MARQUEE_TMDB_API_KEY", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 600*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 2, cfg.Search.MinQueryLength)
	assert.Equal(t, ThemeMarquee, cfg.UI.Theme)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("MARQUEE_TMDB_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tmdb:
  api_key: abc123
  language: de-DE
search:
  debounce: 250ms
ui:
  theme: light
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.TMDB.APIKey)
	assert.Equal(t, "de-DE", cfg.TMDB.Language)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 2, cfg.Search.MinQueryLength, "unset keys keep defaults")
	assert.Equal(t, ThemeLight, cfg.UI.Theme)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MARQUEE_TMDB_API_KEY", "from-env")
	t.Setenv("MARQUEE_UI_THEME", "dark")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
	assert.Equal(t, ThemeDark, cfg.UI.Theme)
}

func TestLoadConfigFallsBackToTMDBEnv(t *testing.T) {
	t.Setenv("MARQUEE_TMDB_API_KEY", "")
	t.Setenv("TMDB_API_KEY", "plain")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.TMDB.APIKey)
}

func TestLoadConfigRejectsBadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: neon\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neon")
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tmdb: [unclosed\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("MARQUEE_TMDB_API_KEY", "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.TMDB.APIKey = "saved-key"
	cfg.Search.Debounce = time.Second
	cfg.Player.Command = "mpv"
	cfg.Player.Args = []string{"--fs"}
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.TMDB.APIKey)
	assert.Equal(t, time.Second, loaded.Search.Debounce)
	assert.Equal(t, "mpv", loaded.Player.Command)
	assert.Equal(t, []string{"--fs"}, loaded.Player.Args)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"theme case-insensitive", func(c *Config) { c.UI.Theme = "DARK" }, false},
		{"negative debounce", func(c *Config) { c.Search.Debounce = -time.Second }, true},
		{"zero min length", func(c *Config) { c.Search.MinQueryLength = 0 }, true},
		{"negative rps", func(c *Config) { c.TMDB.RequestsPerSecond = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
