package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port    int  `yaml:"port"`
		Verbose bool `yaml:"verbose"`
	} `yaml:"server"`

	// Standalone mode runs with a log-only notifier, no mail relay needed.
	StandaloneMode bool `yaml:"standalone_mode"`

	Order struct {
		UnitPriceKobo    int64 `yaml:"unit_price_kobo"`
		MinimumTotalKobo int64 `yaml:"minimum_total_kobo"`
	} `yaml:"order"`

	Ledger struct {
		Path string `yaml:"path"`
	} `yaml:"ledger"`

	Uploads struct {
		Dir          string `yaml:"dir"`
		MaxSizeBytes int64  `yaml:"max_size_bytes"`
	} `yaml:"uploads"`

	SMTP struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Timeout string `yaml:"timeout"`
	} `yaml:"smtp"`

	Bank struct {
		AccountName   string `yaml:"account_name"`
		AccountNumber string `yaml:"account_number"`
		BankName      string `yaml:"bank_name"`
	} `yaml:"bank"`
}

// ParsedConfig contains parsed time.Duration values for easier use
type ParsedConfig struct {
	Config
	SMTPTimeout time.Duration
}

// Credentials holds the mail relay login, taken from the environment so
// secrets never live in the config file.
type Credentials struct {
	EmailAddress  string `env:"EMAIL_ADDRESS"`
	EmailPassword string `env:"EMAIL_PASSWORD"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*ParsedConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	smtpTimeout, err := time.ParseDuration(cfg.SMTP.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp timeout: %v", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return &ParsedConfig{
		Config:      cfg,
		SMTPTimeout: smtpTimeout,
	}, nil
}

// LoadCredentials reads the mail relay credentials from the environment.
// Standalone mode runs without them; online mode requires both.
func LoadCredentials(requireSet bool) (*Credentials, error) {
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials from environment: %v", err)
	}

	if requireSet && (creds.EmailAddress == "" || creds.EmailPassword == "") {
		return nil, fmt.Errorf("EMAIL_ADDRESS and EMAIL_PASSWORD must be set")
	}

	return &creds, nil
}

// validateConfig validates the configuration values
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if cfg.Order.UnitPriceKobo <= 0 {
		return fmt.Errorf("order unit_price_kobo must be positive")
	}

	if cfg.Order.MinimumTotalKobo < 0 {
		return fmt.Errorf("order minimum_total_kobo must be non-negative")
	}

	if cfg.Ledger.Path == "" {
		return fmt.Errorf("ledger path is required")
	}

	if cfg.Uploads.Dir == "" {
		return fmt.Errorf("uploads dir is required")
	}

	if cfg.Uploads.MaxSizeBytes <= 0 {
		return fmt.Errorf("uploads max_size_bytes must be positive")
	}

	if !cfg.StandaloneMode && (cfg.SMTP.Host == "" || cfg.SMTP.Port == 0) {
		return fmt.Errorf("smtp host and port are required in online mode")
	}

	return nil
}
