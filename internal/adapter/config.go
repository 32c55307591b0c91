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

const (
	// DefaultSourceURL is The Cat API v1 base URL
	DefaultSourceURL = "https://api.thecatapi.com/v1"

	// DefaultLimit is the page size of the single load-on-start fetch
	DefaultLimit = 10
)

// Config holds all application configuration
type Config struct {
	Source    SourceConfig    `mapstructure:"source"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Viewer    ViewerConfig    `mapstructure:"viewer"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SourceConfig holds image source configuration
type SourceConfig struct {
	URL     string        `mapstructure:"url"`     // API base URL
	APIKey  string        `mapstructure:"api_key"` // Optional, sent as x-api-key
	Limit   int           `mapstructure:"limit"`   // Images per fetch
	Timeout time.Duration `mapstructure:"timeout"` // Per-load deadline
}

// FavoritesConfig holds favorites persistence configuration
type FavoritesConfig struct {
	File string `mapstructure:"file"` // Empty keeps favorites in memory only
}

// ViewerConfig holds external image viewer configuration
type ViewerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     DefaultSourceURL,
			Limit:   DefaultLimit,
			Timeout: 30 * time.Second,
		},
		Viewer: ViewerConfig{
			Args: []string{},
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
		return filepath.Join(os.Getenv("APPDATA"), "gatos", "gatos.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gatos", "gatos.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gatos")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gatos")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration from the given directories, in order
func LoadConfigFrom(dirs ...string) (*Config, error) {
	return loadConfig(viper.New(), dirs...)
}

func loadConfig(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides, e.g. GATOS_SOURCE_API_KEY
	v.SetEnvPrefix("GATOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKeys(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// bindKeys registers every key so AutomaticEnv can see it during Unmarshal
func bindKeys(v *viper.Viper) {
	for _, k := range []string{
		"source.url", "source.api_key", "source.limit", "source.timeout",
		"favorites.file",
		"viewer.command",
		"logging.file", "logging.level",
	} {
		_ = v.BindEnv(k)
	}
}

// Validate checks the loaded values are usable
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source.url is required")
	}
	if c.Source.Limit <= 0 {
		return fmt.Errorf("source.limit must be positive, got %d", c.Source.Limit)
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must not be negative")
	}
	return nil
}
