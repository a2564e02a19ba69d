// Package config holds the application settings: where the local
// dashboard listens, where ride data lives on disk and which station
// feed to poll.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all the configuration settings for the application.
type Config struct {
	Port    int    `yaml:"port" validate:"required,min=1,max=65535"`
	Env     string `yaml:"env" validate:"required,oneof=development staging production"`
	DataDir string `yaml:"dataDir" validate:"required"`

	FeedURL            string `yaml:"feedUrl" validate:"required,url"`
	FeedRefreshMinutes int    `yaml:"feedRefreshMinutes" validate:"min=0"`
	FeedMaxRetries     int    `yaml:"feedMaxRetries" validate:"min=0,max=10"`

	// SentryDSN enables opt-in error reporting. Empty means fully local
	// operation.
	SentryDSN string `yaml:"sentryDsn" validate:"omitempty,url"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{
		Port:               4000,
		Env:                "development",
		DataDir:            "data",
		FeedURL:            "https://tfl.gov.uk/tfl/syndication/feeds/cycle-hire/livecyclehireupdates.xml",
		FeedRefreshMinutes: 60,
		FeedMaxRetries:     3,
	}
}

var validate = validator.New()

// Load reads a YAML config file, layering it over the defaults, and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings, whether they came from a file or from
// flags.
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}
	return nil
}
