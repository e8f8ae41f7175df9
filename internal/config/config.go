// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	clientID := cfg.MercadoLibre.ClientID
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	MercadoLibre  MercadoLibreConfig  `yaml:"mercadolibre"`
	Amazon        AmazonConfig        `yaml:"amazon"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MercadoLibreConfig holds the OAuth application credentials and API scope
type MercadoLibreConfig struct {
	BaseURL      string `yaml:"base_url"`
	Site         string `yaml:"site"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
}

// AmazonConfig holds scrape adapter settings
type AmazonConfig struct {
	BaseURL        string `yaml:"base_url"`
	MaxResults     int    `yaml:"max_results"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxConcurrent  int    `yaml:"max_concurrent"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${ML_CLIENT_SECRET})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 5000),
		},
		MercadoLibre: MercadoLibreConfig{
			BaseURL:      getEnv("ML_BASE_URL", ""),
			Site:         getEnv("ML_SITE", "MLA"),
			ClientID:     os.Getenv("ML_CLIENT_ID"),
			ClientSecret: os.Getenv("ML_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("ML_REDIRECT_URI"),
		},
		Amazon: AmazonConfig{
			BaseURL:        getEnv("AMAZON_BASE_URL", ""),
			MaxResults:     getEnvInt("AMAZON_MAX_RESULTS", 5),
			TimeoutSeconds: getEnvInt("AMAZON_TIMEOUT_SECONDS", 60),
			MaxConcurrent:  getEnvInt("AMAZON_MAX_CONCURRENT", 2),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Amazon.MaxResults == 0 {
		c.Amazon.MaxResults = 5
	}
	if c.Amazon.TimeoutSeconds == 0 {
		c.Amazon.TimeoutSeconds = 60
	}
	if c.Amazon.MaxConcurrent == 0 {
		c.Amazon.MaxConcurrent = 2
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
