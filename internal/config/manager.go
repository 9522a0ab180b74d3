package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/devrules/devrules/internal/defs"
	"gopkg.in/yaml.v3"
)

// ConfigManager provides thread-safe configuration management.
// Get returns compiled defaults until Load succeeds, so callers on the
// hook path never see a nil Config.
type ConfigManager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	fromFile bool
	loader   *Loader
}

// NewConfigManager creates a new ConfigManager holding compiled defaults.
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		loader: NewLoader(),
		config: NewDefaultConfig(),
	}
}

// ResolvePath returns the configuration file path for projectRoot.
// DEVRULES_CONFIG, when set, takes precedence.
func ResolvePath(projectRoot string) string {
	if envPath := os.Getenv(defs.EnvConfig); envPath != "" {
		return filepath.Clean(envPath)
	}
	return filepath.Join(filepath.Clean(projectRoot), defs.ConfigDir, defs.ConfigYAML)
}

// Load reads configuration for projectRoot, applies environment overrides
// and validates the result. When the file cannot be loaded or is invalid,
// the error is returned and the held configuration becomes the defaults
// with environment overrides applied.
func (m *ConfigManager) Load(projectRoot string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := ResolvePath(projectRoot)
	cfg, found, err := m.loader.Load(path)
	if err != nil {
		m.useFallback(path)
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyEnvOverrides(cfg)
	normalize(cfg)

	if err := Validate(cfg); err != nil {
		m.useFallback(path)
		return nil, err
	}

	m.config = cfg
	m.path = path
	m.fromFile = found

	return cfg, nil
}

// useFallback installs the defaults plus environment overrides. An invalid
// DEVRULES_LOG_LEVEL falls back to the default level.
func (m *ConfigManager) useFallback(path string) {
	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)
	normalize(cfg)
	if validateLogLevel(cfg.Log.Level) != nil {
		cfg.Log.Level = DefaultLogLevel
	}
	m.config = cfg
	m.path = path
	m.fromFile = false
}

// Get returns the current in-memory configuration.
func (m *ConfigManager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the file path used by the last successful Load.
func (m *ConfigManager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// FromFile reports whether the last successful Load read an existing file.
func (m *ConfigManager) FromFile() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fromFile
}

// Save writes cfg to path atomically. It refuses to replace an existing
// file unless overwrite is set.
func Save(path string, cfg *Config, overwrite bool) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return atomicWrite(path, data)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if isTruthy(os.Getenv(defs.EnvGuardDisabled)) {
		cfg.Guard.Enabled = false
	}
	if level := os.Getenv(defs.EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv(defs.EnvLogFile); file != "" {
		cfg.Log.File = file
	}
}

func normalize(cfg *Config) {
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".devrules-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
