package version

import (
	"runtime/debug"
	"testing"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func withVars(t *testing.T, v, c, d string) {
	t.Helper()
	ov, oc, od := Version, Commit, Date
	Version, Commit, Date = v, c, d
	t.Cleanup(func() { Version, Commit, Date = ov, oc, od })
}

func TestGet_LinkTimeValuesWin(t *testing.T) {
	withVars(t, "v1.2.3", "abc123", "2026-01-02")
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v9.9.9"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "ffffffffffffffffffff"},
			{Key: "vcs.time", Value: "2020-01-01T00:00:00Z"},
		},
	}, true)

	got := Get()
	want := Info{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-02"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGet_FallsBackToBuildInfo(t *testing.T) {
	withVars(t, "v0.1.0-dev", "", "")
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		},
	}, true)

	got := Get()
	want := Info{Version: "v0.4.0", Commit: "0123456789ab", Date: "2026-03-04T05:06:07Z"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGet_DevelBuildKeepsDefault(t *testing.T) {
	withVars(t, "v0.1.0-dev", "", "")
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)

	got := Get()
	want := Info{Version: "v0.1.0-dev", Commit: "none", Date: "unknown"}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetFullVersion(t *testing.T) {
	withVars(t, "v1.0.0", "deadbeef", "2026-10-18")
	withBuildInfo(t, nil, false)

	want := "v1.0.0 (commit: deadbeef, built: 2026-10-18)"
	if got := GetFullVersion(); got != want {
		t.Errorf("GetFullVersion() = %q, want %q", got, want)
	}
	if got := GetVersion(); got != "v1.0.0" {
		t.Errorf("GetVersion() = %q, want v1.0.0", got)
	}
}

func TestShortRevision(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"0123456789abcdef", "0123456789ab"},
	}
	for _, tt := range tests {
		if got := shortRevision(tt.in); got != tt.want {
			t.Errorf("shortRevision(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
