package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LibrariesPath string // plugin library bundle directories

	MaxPrivateEnvs int
	StatusPort     int
	LogFormat      string
	LogLevel       string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.LibrariesPath == "" {
		return nil, errors.New("LibrariesPath is a required configuration field and cannot be empty")
	}
	if cfg.MaxPrivateEnvs < 0 {
		return nil, errors.New("MaxPrivateEnvs cannot be negative")
	}

	return &cfg, nil
}
