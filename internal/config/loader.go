package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader reads configuration from a YAML file.
type Loader struct{}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration file at path and returns a Config with
// defaults applied for missing fields. The second return value reports
// whether the file existed. A missing file is not an error.
func (l *Loader) Load(path string) (*Config, bool, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", filepath.Base(path), ErrInvalidYAML)
	}

	return cfg, true, nil
}
