// Package common provides shared utilities for the NISS service
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the NISS service
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Gateway     GatewayConfig  `toml:"gateway"`
	Engine      EngineConfig   `toml:"engine"`
	Screener    ScreenerConfig `toml:"screener"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the scan-history store configuration
type StorageConfig struct {
	Path string `toml:"path"`
}

// GatewayConfig holds Market Data Gateway client configuration.
// The gateway is the normalizing proxy in front of the quote/news/options
// providers; this service never talks to the upstream APIs directly.
type GatewayConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"` // requests per second
	Timeout   string `toml:"timeout"`
	QuoteTTL  string `toml:"quote_ttl"` // snapshot + market context cache TTL
	NewsTTL   string `toml:"news_ttl"`
}

// GetTimeout parses and returns the HTTP timeout duration
func (c *GatewayConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetQuoteTTL parses and returns the quote cache TTL
func (c *GatewayConfig) GetQuoteTTL() time.Duration {
	d, err := time.ParseDuration(c.QuoteTTL)
	if err != nil {
		return 1 * time.Minute
	}
	return d
}

// GetNewsTTL parses and returns the news cache TTL
func (c *GatewayConfig) GetNewsTTL() time.Duration {
	d, err := time.ParseDuration(c.NewsTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// EngineConfig holds scoring engine construction options.
// Weights override the default component weights by component name
// (priceAction, newsImpact, technicalMomentum, optionsFlow,
// relativeStrength, volumeAnalysis). The engine never mutates these
// after construction.
type EngineConfig struct {
	Weights map[string]float64 `toml:"weights"`
}

// ScreenerConfig holds batch screening configuration
type ScreenerConfig struct {
	Workers   int `toml:"workers"`    // parallel per-symbol scorers
	NewsLimit int `toml:"news_limit"` // max articles fetched per symbol
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Storage: StorageConfig{
			Path: "data/screens",
		},
		Gateway: GatewayConfig{
			BaseURL:   "http://localhost:8080",
			RateLimit: 10,
			Timeout:   "30s",
			QuoteTTL:  "1m",
			NewsTTL:   "5m",
		},
		Screener: ScreenerConfig{
			Workers:   4,
			NewsLimit: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("NISS_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("NISS_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("NISS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("NISS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("NISS_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if url := os.Getenv("NISS_GATEWAY_URL"); url != "" {
		config.Gateway.BaseURL = url
	}

	if key := os.Getenv("NISS_GATEWAY_API_KEY"); key != "" {
		config.Gateway.APIKey = key
	}

	if workers := os.Getenv("NISS_SCREENER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			config.Screener.Workers = w
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ValidateRequired returns the list of required settings that are missing.
// Only the gateway URL is mandatory; the API key depends on the deployment.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if strings.TrimSpace(c.Gateway.BaseURL) == "" {
		missing = append(missing, "gateway.base_url")
	}
	return missing
}
