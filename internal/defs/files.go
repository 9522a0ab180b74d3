package defs

// Project directory and file names.
const (
	// ConfigDir is the per-project devrules directory.
	ConfigDir = ".devrules"

	// ConfigYAML is the configuration file under ConfigDir.
	ConfigYAML = "config.yaml"

	// ClaudeDir is the Claude Code project directory.
	ClaudeDir = ".claude"

	// SettingsJSON is the Claude Code project settings file.
	SettingsJSON = "settings.json"
)

// Environment variables read by devrules.
const (
	// EnvConfig overrides the configuration file path.
	EnvConfig = "DEVRULES_CONFIG"

	// EnvGuardDisabled disables the destructive-command guard when truthy.
	EnvGuardDisabled = "DEVRULES_GUARD_DISABLED"

	// EnvLogLevel overrides log.level.
	EnvLogLevel = "DEVRULES_LOG_LEVEL"

	// EnvLogFile overrides log.file.
	EnvLogFile = "DEVRULES_LOG_FILE"

	// EnvClaudeProjectDir is set by Claude Code to the project root.
	EnvClaudeProjectDir = "CLAUDE_PROJECT_DIR"
)
