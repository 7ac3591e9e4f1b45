package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "AAS_REGISTRY_CONFIG"
	// ConfigFileName is the config file name looked up in the working directory
	ConfigFileName = "aas-registry.yaml"
	// ConfigDirName is the config directory name under XDG and /etc
	ConfigDirName = "aas-registry"

	configDirFile = "config.yaml"
)

// SearchPaths lists candidate config files in priority order. The explicit
// environment path comes first when set.
func SearchPaths() []string {
	var paths []string

	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}

	paths = append(paths, ConfigFileName)

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, ConfigDirName, configDirFile))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, configDirFile))
	}

	return append(paths, filepath.Join("/etc", ConfigDirName, configDirFile))
}

// FindConfigPath returns the first existing entry of SearchPaths, or an
// empty string if no config file exists. A working directory hit is made
// absolute.
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		if !fileExists(path) {
			continue
		}
		if path == ConfigFileName {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
		}
		return path
	}
	return ""
}

// DefaultConfigPath returns the preferred location for a new config file.
// Prefers XDG config home, falls back to working directory.
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, configDirFile)
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, configDirFile)
	}
	return ConfigFileName
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
