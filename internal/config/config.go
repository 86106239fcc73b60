package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logging      LoggingConfig      `toml:"logging"`
	Storage      StorageConfig      `toml:"storage"`
	Parser       ParserConfig       `toml:"parser"`
	Venues       VenuesConfig       `toml:"venues"`
	Availability AvailabilityConfig `toml:"availability"`
	AI           AIConfig           `toml:"ai"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host                   string `toml:"host"`
	Port                   int    `toml:"port"`
	ReadTimeoutSeconds     int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `toml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
	CORSAllowedOrigins     string `toml:"cors_allowed_origins"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
}

// StorageConfig represents the SQLite storage configuration
type StorageConfig struct {
	Path           string `toml:"path"`
	SeedDemoVenues bool   `toml:"seed_demo_venues"`
}

// ParserConfig represents the command parser configuration
type ParserConfig struct {
	DefaultLocale string `toml:"default_locale"` // en, es, fr
}

// VenuesConfig represents the venue resolver configuration
type VenuesConfig struct {
	MaxDistanceKM float64 `toml:"max_distance_km"`
}

// AvailabilityConfig represents the booking conflict check configuration
type AvailabilityConfig struct {
	Enabled bool `toml:"enabled"`
}

// AIConfig represents the AI enhancement configuration
type AIConfig struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultConfig returns the default application configuration
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:                   "0.0.0.0",
			Port:                   8080,
			ReadTimeoutSeconds:     15,
			WriteTimeoutSeconds:    15,
			ShutdownTimeoutSeconds: 10,
			CORSAllowedOrigins:     "*",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Path:           "eventparse.db",
			SeedDemoVenues: true,
		},
		Parser: ParserConfig{
			DefaultLocale: "en",
		},
		Venues: VenuesConfig{
			MaxDistanceKM: 50,
		},
		Availability: AvailabilityConfig{
			Enabled: true,
		},
		AI: AIConfig{
			Enabled:        false,
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 3,
		},
	}
}

// LoadConfig loads the configuration from the given TOML file, applying
// defaults for anything the file does not set. A missing file is not an
// error; the defaults are used as-is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Secrets stay out
// of the config file this way.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("EVENTPARSE_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Parser.DefaultLocale {
	case "en", "es", "fr":
	default:
		return fmt.Errorf("unsupported default locale: %s", c.Parser.DefaultLocale)
	}
	if c.Venues.MaxDistanceKM <= 0 {
		return fmt.Errorf("venues.max_distance_km must be positive, got %v", c.Venues.MaxDistanceKM)
	}
	if c.AI.Enabled && c.AI.TimeoutSeconds <= 0 {
		return fmt.Errorf("ai.timeout_seconds must be positive when AI is enabled")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}
	return nil
}
