package config

// Config is the merged devrules configuration.
type Config struct {
	Guard GuardConfig `yaml:"guard"`
	Log   LogConfig   `yaml:"log"`
}

// GuardConfig controls the destructive-command guard.
type GuardConfig struct {
	// Enabled turns the PreToolUse guard on. When false the hook allows
	// every command without inspecting it.
	Enabled bool `yaml:"enabled"`
}

// LogConfig controls operational logging. Logs never go to stdout, which
// belongs to the hook protocol.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error, off
	File  string `yaml:"file,omitempty"`
}
