package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aasregistry/internal/tracing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("Backend = %s, want %s", cfg.Backend, BackendMemory)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should not be empty")
	}
	if cfg.IDMatch != "exact" {
		t.Errorf("IDMatch = %s, want exact", cfg.IDMatch)
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing should be disabled by default")
	}
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "sqlite", mutate: func(c *Config) { c.Backend = BackendSQLite }},
		{name: "fold", mutate: func(c *Config) { c.IDMatch = "fold" }},
		{name: "otlp", mutate: func(c *Config) { c.Tracing.Exporter = tracing.ExporterOTLP }},
		{name: "backend case", mutate: func(c *Config) { c.Backend = "SQLite" }},
		{name: "exporter case", mutate: func(c *Config) { c.Tracing.Exporter = "OTLP" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Backend = "postgres" }, wantErr: "backend"},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Backend = BackendSQLite
			c.Database.Path = " "
		}, wantErr: "database.path"},
		{name: "unknown id match", mutate: func(c *Config) { c.IDMatch = "fuzzy" }, wantErr: "id_match"},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
		{name: "unknown exporter", mutate: func(c *Config) { c.Tracing.Exporter = "jaeger" }, wantErr: "tracing.exporter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "bogus"
	cfg.IDMatch = "bogus"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend")
	assert.Contains(t, err.Error(), "id_match")
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Backend = BackendSQLite
	cfg.Database.Path = filepath.Join(tmpDir, "registry.db")
	cfg.IDMatch = "fold"
	cfg.Log.JSON = true
	cfg.Tracing.Enabled = true

	require.NoError(t, cfg.Save(configPath))

	loaded, path, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("backend: sqlite\n"), 0644))

	cfg, _, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, defaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "exact", cfg.IDMatch)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, tracing.ExporterStdout, cfg.Tracing.Exporter)
	assert.Equal(t, 1, cfg.Version)
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	require.ErrorContains(t, err, "read config")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("backend: [unterminated\n"), 0644))
	_, _, err = LoadFromPath(bad)
	require.ErrorContains(t, err, "parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("id_match: fuzzy\n"), 0644))
	_, _, err = LoadFromPath(invalid)
	require.ErrorContains(t, err, "invalid config")
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))
	t.Chdir(tmpDir)

	// Nothing on disk
	t.Setenv(EnvConfigPath, "")
	if got := FindConfigPath(); got != "" && !strings.HasPrefix(got, "/etc/") {
		t.Errorf("FindConfigPath() = %q, want none", got)
	}

	// XDG location
	xdgPath := filepath.Join(tmpDir, "xdg", ConfigDirName, "config.yaml")
	require.NoError(t, DefaultConfig().Save(xdgPath))
	assert.Equal(t, xdgPath, FindConfigPath())

	// Working directory beats XDG
	require.NoError(t, DefaultConfig().Save(ConfigFileName))
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), FindConfigPath())

	// Explicit env var beats everything
	explicit := filepath.Join(tmpDir, "explicit.yaml")
	require.NoError(t, DefaultConfig().Save(explicit))
	t.Setenv(EnvConfigPath, explicit)
	assert.Equal(t, explicit, FindConfigPath())

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, filepath.Join(tmpDir, "nonexistent.yaml"))
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), FindConfigPath())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/aas-registry/config.yaml", DefaultConfigPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/op")
	assert.Equal(t, "/home/op/.config/aas-registry/config.yaml", DefaultConfigPath())
}

func TestSummary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = BackendSQLite
	s := cfg.Summary()
	assert.Contains(t, s, "sqlite")
	assert.Contains(t, s, cfg.Database.Path)
	assert.Contains(t, s, "Tracing: disabled")
}
