package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devrules/devrules/internal/config"
	"github.com/devrules/devrules/internal/defs"
)

func runConfig(t *testing.T, sub string) (string, error) {
	t.Helper()
	cmd := findSubcommand(t, configCmd, sub)
	var out bytes.Buffer
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := cmd.RunE(cmd, nil)
	return out.String(), err
}

func TestConfigShow_Defaults(t *testing.T) {
	useDeps(t, newTestDeps(t, nil))

	got, err := runConfig(t, "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{"# source: defaults", "enabled: true", "level:", "off"} {
		if !strings.Contains(got, want) {
			t.Errorf("config show missing %q:\n%s", want, got)
		}
	}
}

func TestConfigShow_NilDeps(t *testing.T) {
	useDeps(t, nil)
	if _, err := runConfig(t, "show"); err == nil {
		t.Error("expected error with nil deps")
	}
}

func TestConfigInit(t *testing.T) {
	t.Setenv(defs.EnvConfig, "")
	t.Setenv(defs.EnvGuardDisabled, "")
	t.Setenv(defs.EnvLogLevel, "")
	t.Setenv(defs.EnvLogFile, "")

	d := newTestDeps(t, nil)
	useDeps(t, d)
	path := filepath.Join(d.ProjectRoot, defs.ConfigDir, defs.ConfigYAML)

	got, err := runConfig(t, "init")
	if err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if !strings.Contains(got, path) {
		t.Errorf("output = %q, want path %s", got, path)
	}

	mgr := config.NewConfigManager()
	cfg, err := mgr.Load(d.ProjectRoot)
	if err != nil {
		t.Fatalf("Load after init: %v", err)
	}
	if !mgr.FromFile() || !cfg.Guard.Enabled || cfg.Log.Level != config.LogLevelOff {
		t.Errorf("written config = %+v (fromFile=%v)", cfg, mgr.FromFile())
	}

	if _, err := runConfig(t, "init"); !errors.Is(err, config.ErrConfigExists) {
		t.Errorf("second init error = %v, want ErrConfigExists", err)
	}

	if err := os.WriteFile(path, []byte("guard:\n  enabled: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	setFlag(t, findSubcommand(t, configCmd, "init"), "force", "true")
	if _, err := runConfig(t, "init"); err != nil {
		t.Fatalf("forced init error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "enabled: true") {
		t.Errorf("forced init did not overwrite:\n%s", data)
	}
}
