// Package cli provides the Cobra command tree and dependency injection
// wiring for the devrules CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/devrules/devrules/internal/config"
	"github.com/devrules/devrules/internal/defs"
	"github.com/devrules/devrules/internal/guard"
	"github.com/devrules/devrules/internal/hook"
	"github.com/devrules/devrules/internal/rules"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the only place where concrete types are instantiated and wired
// together.
type Dependencies struct {
	Config       *config.ConfigManager
	ProjectRoot  string
	Guard        guard.Classifier
	HookRegistry hook.Registry
	HookProtocol hook.Protocol
	Rules        *rules.Catalog
	Logger       *slog.Logger

	logCloser io.Closer
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies. Failures
// here never abort the process: the hook must stay fail-open, so a bad
// config falls back to defaults and is only logged.
func InitDependencies() {
	root := projectRoot()
	cfgMgr := config.NewConfigManager()
	_, cfgErr := cfgMgr.Load(root)

	logger, closer := newLogger(cfgMgr.Get().Log, os.Stderr)
	slog.SetDefault(logger)

	if cfgErr != nil {
		logger.Warn("failed to load config, using defaults",
			"path", config.ResolvePath(root),
			"error", cfgErr,
		)
	}

	classifier := guard.New()
	d := &Dependencies{
		Config:       cfgMgr,
		ProjectRoot:  root,
		Guard:        classifier,
		HookProtocol: hook.NewProtocol(),
		HookRegistry: hook.NewRegistry(),
		Logger:       logger,
		logCloser:    closer,
	}
	d.HookRegistry.Register(hook.NewRemovalGuardHandler(cfgMgr, classifier))

	catalog, err := rules.Default()
	if err != nil {
		logger.Warn("failed to load rule catalog", "error", err)
	}
	d.Rules = catalog

	deps = d
}

// Close releases resources held by the dependencies, such as the log file.
func (d *Dependencies) Close() {
	if d == nil || d.logCloser == nil {
		return
	}
	_ = d.logCloser.Close()
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// projectRoot returns CLAUDE_PROJECT_DIR when set, else the working directory.
func projectRoot() string {
	if dir := os.Getenv(defs.EnvClaudeProjectDir); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
