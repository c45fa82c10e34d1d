package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration
type Config struct {
	ListenAddr     string `yaml:"listen_addr"`
	StoreBaseURL   string `yaml:"store_base_url"`
	RabbitMQURL    string `yaml:"rabbitmq_url"`
	AllowedOrigins string `yaml:"allowed_origins"`

	// SessionUTCOffsetMinutes pins the UTC offset used by the storage date
	// normalizer. When nil, the process-local zone offset is used.
	SessionUTCOffsetMinutes *int `yaml:"session_utc_offset_minutes"`

	// ErrorLogRetentionDays controls how long error log entries are kept
	// by the cleanup job.
	ErrorLogRetentionDays int `yaml:"error_log_retention_days"`
}

// Load reads a config.yml file and applies environment overrides.
// A missing file is not an error; every field then comes from the
// environment or its default.
func Load(path string) (Config, error) {
	cfg := Config{
		ListenAddr:            ":8080",
		ErrorLogRetentionDays: 90,
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("STORE_BASE_URL"); v != "" {
		cfg.StoreBaseURL = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.RabbitMQURL = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = v
	}

	if cfg.StoreBaseURL == "" {
		return Config{}, fmt.Errorf("missing required store base URL")
	}

	return cfg, nil
}
