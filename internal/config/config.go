package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the client configuration
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url" env:"MEALBADGE_API_BASE_URL"`
		Timeout string `yaml:"timeout" env:"MEALBADGE_API_TIMEOUT"`
		// ServerPaginates controls how admin list responses are interpreted.
		// When true, a bare (un-enveloped) list from a paged endpoint is a
		// malformed response. When false, the client falls back to computing
		// page counts from the list length.
		ServerPaginates bool `yaml:"server_paginates" env:"MEALBADGE_API_SERVER_PAGINATES"`
	} `yaml:"api"`

	Session struct {
		TokenPath string `yaml:"token_path" env:"MEALBADGE_TOKEN_PATH"`
	} `yaml:"session"`

	Logging struct {
		Level  string `yaml:"level" env:"MEALBADGE_LOG_LEVEL"`
		Format string `yaml:"format" env:"MEALBADGE_LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; defaults plus env cover the common case
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.API.BaseURL = "http://localhost:8080/api"
	config.API.Timeout = "15s"
	config.API.ServerPaginates = true

	config.Session.TokenPath = defaultTokenPath()

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if _, err := url.Parse(config.API.BaseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}

	if _, err := time.ParseDuration(config.API.Timeout); err != nil {
		return fmt.Errorf("invalid API timeout format: %w", err)
	}

	if config.Session.TokenPath == "" {
		return fmt.Errorf("session token path is required")
	}

	return nil
}

// APITimeout returns the request timeout as a duration
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "mealbadge", "token")
}
