package config

// Default value constants.
const (
	DefaultGuardEnabled = true
	DefaultLogLevel     = LogLevelOff
)

// Accepted log.level values.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelOff   = "off"
)

// NewDefaultConfig returns a Config populated with compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Guard: GuardConfig{Enabled: DefaultGuardEnabled},
		Log:   LogConfig{Level: DefaultLogLevel},
	}
}

// ValidLogLevels returns the accepted log.level values.
func ValidLogLevels() []string {
	return []string{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelOff}
}
