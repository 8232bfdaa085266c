// Package config handles loading and parsing application configuration.
// It supports two sources for the YAML file (in priority order):
//
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Both are optional. Every field has a default, so the roster manager
// starts with no file at all and persists to ./students.json.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backend names accepted in storage_backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	// ENV is a common variable name, so any other value is accepted and
	// logged like "dev" rather than refusing to start.
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the filesystem path of the persistence file
	// (a JSON document or a SQLite .db file, depending on the backend).
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"students.json" validate:"required"`

	// StorageBackend selects the storage.Storage implementation.
	StorageBackend string `yaml:"storage_backend" env:"STORAGE_BACKEND" env-default:"json" validate:"oneof=json sqlite"`
}

// Load reads the config at path, or only defaults and environment when
// path is empty, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		// ReadEnv fills env-default values and applies env overrides
		// without touching the filesystem.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		// Verify the file exists before trying to read it so the caller
		// gets a clear message rather than a cryptic "open" error.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path, loads it and returns the config.
//
// Functions prefixed with "Must" are allowed to fatal on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}
