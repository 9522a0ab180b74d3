package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks the configuration for correctness. An empty log level
// is accepted and means the default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationErrors{Errors: []ValidationError{{
			Field:   "config",
			Message: "configuration is nil",
			Wrapped: ErrInvalidConfig,
		}}}
	}

	var errs []ValidationError
	errs = append(errs, validateLogLevel(cfg.Log.Level)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateLogLevel(level string) []ValidationError {
	if level == "" {
		return nil
	}
	if slices.Contains(ValidLogLevels(), strings.ToLower(level)) {
		return nil
	}
	return []ValidationError{{
		Field:   "log.level",
		Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		Value:   level,
		Wrapped: ErrInvalidLogLevel,
	}}
}
