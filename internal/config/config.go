package config

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

const (
	envPrefix      = "MARQUEE"
	configName     = "config"
	configType     = "yaml"
	maxPages       = 5
	defaultBaseURL = "https://api.themoviedb.org/3"
	defaultImages  = "https://image.tmdb.org/t/p"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Network NetworkConfig `mapstructure:"network"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds movie API configuration
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Language     string        `mapstructure:"language"` // e.g. "en-US"
	Region       string        `mapstructure:"region"`   // ISO 3166-1, optional
	Pages        int           `mapstructure:"pages"`    // list pages per fetch
	Timeout      time.Duration `mapstructure:"timeout"`
}

// NetworkConfig holds connectivity probe configuration
type NetworkConfig struct {
	ProbeAddress string        `mapstructure:"probe_address"` // host:port dialed before each fetch
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns    int  `mapstructure:"grid_columns"`
	RestoreSession bool `mapstructure:"restore_session"`
	ShowAdult      bool `mapstructure:"show_adult"`
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
			BaseURL:      defaultBaseURL,
			ImageBaseURL: defaultImages,
			Language:     "en-US",
			Pages:        1,
			Timeout:      15 * time.Second,
		},
		Network: NetworkConfig{
			ProbeAddress: "api.themoviedb.org:443",
			ProbeTimeout: 3 * time.Second,
		},
		UI: UIConfig{
			GridColumns:    4,
			RestoreSession: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee", "marquee.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "marquee.log")
	}
}

// DefaultDir returns the default config directory for the current OS
func DefaultDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// LoadConfig loads configuration from the default directory and environment
func LoadConfig() (*Config, error) {
	return Load(DefaultDir())
}

// Load reads config.yaml from dir (a missing file is fine) and applies
// MARQUEE_* environment overrides, e.g. MARQUEE_TMDB_API_KEY.
func Load(dir string) (*Config, error) {
	v := newViper()
	if dir != "" {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)

	// Environment variable overrides. AutomaticEnv only resolves keys
	// viper already knows about, so every key gets a default.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setValues(DefaultConfig(), v.SetDefault)
	return v
}

// setValues walks every config key. Keys are spelled out so the written
// file uses snake_case names.
func setValues(cfg *Config, set func(key string, value any)) {
	set("tmdb.api_key", cfg.TMDB.APIKey)
	set("tmdb.base_url", cfg.TMDB.BaseURL)
	set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	set("tmdb.language", cfg.TMDB.Language)
	set("tmdb.region", cfg.TMDB.Region)
	set("tmdb.pages", cfg.TMDB.Pages)
	set("tmdb.timeout", cfg.TMDB.Timeout.String())

	set("network.probe_address", cfg.Network.ProbeAddress)
	set("network.probe_timeout", cfg.Network.ProbeTimeout.String())

	set("ui.grid_columns", cfg.UI.GridColumns)
	set("ui.restore_session", cfg.UI.RestoreSession)
	set("ui.show_adult", cfg.UI.ShowAdult)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// normalize clamps out-of-range values back to usable defaults
func (c *Config) normalize() {
	defaults := DefaultConfig()
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if strings.TrimSpace(c.TMDB.BaseURL) == "" {
		c.TMDB.BaseURL = defaults.TMDB.BaseURL
	}
	c.TMDB.BaseURL = strings.TrimRight(c.TMDB.BaseURL, "/")
	if strings.TrimSpace(c.TMDB.ImageBaseURL) == "" {
		c.TMDB.ImageBaseURL = defaults.TMDB.ImageBaseURL
	}
	if c.TMDB.Pages < 1 {
		c.TMDB.Pages = 1
	}
	if c.TMDB.Pages > maxPages {
		c.TMDB.Pages = maxPages
	}
	if c.TMDB.Timeout <= 0 {
		c.TMDB.Timeout = defaults.TMDB.Timeout
	}
	if c.Network.ProbeTimeout <= 0 {
		c.Network.ProbeTimeout = defaults.Network.ProbeTimeout
	}
	if c.UI.GridColumns < 1 {
		c.UI.GridColumns = defaults.UI.GridColumns
	}
	if c.Logging.File == "" {
		c.Logging.File = defaults.Logging.File
	}
}

// SaveConfig saves the configuration to the default directory
func SaveConfig(cfg *Config) error {
	return Save(DefaultDir(), cfg)
}

// Save writes cfg to dir/config.yaml, creating the directory if needed
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configType)
	setValues(cfg, v.Set)

	configFile := filepath.Join(dir, configName+"."+configType)
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != ""
}

// CachePath returns the cache directory path for the current OS
func CachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee", "cache")
	}
}

// PrefsPath returns the preference file path inside the config directory
func PrefsPath(dir string) string {
	if dir == "" {
		dir = DefaultDir()
	}
	return filepath.Join(dir, "prefs.toml")
}

// ClearCache removes all cached data
func ClearCache() error {
	if err := os.RemoveAll(CachePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
