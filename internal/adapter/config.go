package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Theme names accepted by ui.theme
const (
	ThemeDark    = "dark"
	ThemeLight   = "light"
	ThemeMarquee = "marquee"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Search  SearchConfig  `mapstructure:"search"`
	Storage StorageConfig `mapstructure:"storage"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	ImageBaseURL      string        `mapstructure:"image_base_url"`
	Language          string        `mapstructure:"language"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// SearchConfig tunes the search screen
type SearchConfig struct {
	Debounce       time.Duration `mapstructure:"debounce"`
	MinQueryLength int           `mapstructure:"min_query_length"`
}

// StorageConfig holds watchlist storage configuration.
// An empty DataDir keeps the watchlist in memory.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// PlayerConfig holds the external opener for trailers and links
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p",
			Language:          "en-US",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 20,
		},
		Search: SearchConfig{
			Debounce:       600 * time.Millisecond,
			MinQueryLength: 2,
		},
		Storage: StorageConfig{
			DataDir: defaultDataPath(),
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			Theme: ThemeMarquee,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// DefaultConfigPath returns the default config file path for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "config.yaml")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee", "config.yaml")
	}
}

// newViper returns a viper instance seeded with the defaults so every key
// is known to Unmarshal and can be overridden from the environment.
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("tmdb.api_key", d.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", d.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", d.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", d.TMDB.Language)
	v.SetDefault("tmdb.timeout", d.TMDB.Timeout)
	v.SetDefault("tmdb.requests_per_second", d.TMDB.RequestsPerSecond)
	v.SetDefault("search.debounce", d.Search.Debounce)
	v.SetDefault("search.min_query_length", d.Search.MinQueryLength)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("player.command", d.Player.Command)
	v.SetDefault("player.args", d.Player.Args)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)

	// Environment variable overrides: MARQUEE_TMDB_API_KEY, MARQUEE_UI_THEME, ...
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// An empty path uses DefaultConfigPath; a missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// The conventional TMDB variable is honoured when nothing else set a key
	if cfg.TMDB.APIKey == "" {
		cfg.TMDB.APIKey = os.Getenv("TMDB_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the configuration to path (DefaultConfigPath when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	v := viper.New()
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())
	v.Set("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)

	v.Set("search.debounce", cfg.Search.Debounce.String())
	v.Set("search.min_query_length", cfg.Search.MinQueryLength)

	v.Set("storage.data_dir", cfg.Storage.DataDir)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("ui.theme", cfg.UI.Theme)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if a TMDB API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// Validate rejects values the app cannot run with
func (c *Config) Validate() error {
	switch strings.ToLower(c.UI.Theme) {
	case ThemeDark, ThemeLight, ThemeMarquee:
	default:
		return fmt.Errorf("invalid ui.theme %q (want dark, light or marquee)", c.UI.Theme)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("invalid search.debounce %s", c.Search.Debounce)
	}
	if c.Search.MinQueryLength < 1 {
		return fmt.Errorf("invalid search.min_query_length %d", c.Search.MinQueryLength)
	}
	if c.TMDB.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid tmdb.requests_per_second %v", c.TMDB.RequestsPerSecond)
	}
	return nil
}
