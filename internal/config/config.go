// Package config provides configuration management for the AAS registry.
//
// The config file selects the storage backend and identifier matching
// policy. Registry content itself lives in the backend and is not part
// of the config.
//
// Config file locations (priority order):
//  1. $AAS_REGISTRY_CONFIG
//  2. ./aas-registry.yaml
//  3. $XDG_CONFIG_HOME/aas-registry/config.yaml
//  4. ~/.config/aas-registry/config.yaml
//  5. /etc/aas-registry/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"aasregistry/internal/domain"
	"aasregistry/internal/log"
	"aasregistry/internal/tracing"
)

// Backend names accepted in Config.Backend
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

const defaultDatabasePath = "./aas-registry.db"

// Config is the on-disk configuration
type Config struct {
	Version  int            `yaml:"version"`
	Backend  string         `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	IDMatch  string         `yaml:"id_match"`
	Log      LogConfig      `yaml:"log"`
	Tracing  tracing.Config `yaml:"tracing"`
}

// DatabaseConfig locates the SQLite database
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls the CLI logger
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Backend:  BackendMemory,
		Database: DatabaseConfig{Path: defaultDatabasePath},
		IDMatch:  string(domain.IDMatchExact),
		Log:      LogConfig{Level: "info"},
		Tracing:  tracing.DefaultConfig(),
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.Database.Path == "" {
		c.Database.Path = defaults.Database.Path
	}
	if c.IDMatch == "" {
		c.IDMatch = defaults.IDMatch
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = defaults.Tracing.Exporter
	}
	if c.Tracing.OTLPEndpoint == "" {
		c.Tracing.OTLPEndpoint = defaults.Tracing.OTLPEndpoint
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = defaults.Tracing.ServiceName
	}
}

// Validate reports every invalid field at once
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Backend) {
	case BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			errs = append(errs, errors.New("database.path is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("backend: unknown backend %q", c.Backend))
	}

	if _, err := domain.ParseIDMatch(c.IDMatch); err != nil {
		errs = append(errs, fmt.Errorf("id_match: %w", err))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	switch strings.ToLower(c.Tracing.Exporter) {
	case tracing.ExporterNone, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		errs = append(errs, fmt.Errorf("tracing.exporter: unknown exporter %q", c.Tracing.Exporter))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Backend: %s", c.Backend)
	if strings.EqualFold(c.Backend, BackendSQLite) {
		summary += fmt.Sprintf(" (%s)", c.Database.Path)
	}
	summary += fmt.Sprintf(", ID match: %s\n", c.IDMatch)
	summary += fmt.Sprintf("Log level: %s, JSON: %t\n", c.Log.Level, c.Log.JSON)
	if c.Tracing.Enabled {
		summary += fmt.Sprintf("Tracing: %s", c.Tracing.Exporter)
	} else {
		summary += "Tracing: disabled"
	}

	return summary
}
