// Package version reports the devrules build identity. Release builds set
// the variables with -ldflags; other builds fall back to module build info.
package version

import (
	"fmt"
	"runtime/debug"
)

const devVersion = "v0.1.0-dev"

// Set via -ldflags "-X github.com/devrules/devrules/pkg/version.Version=...".
var (
	Version = devVersion
	Commit  = ""
	Date    = ""
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is the resolved build identity.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get resolves the build identity. Values set at link time win; empty
// commit and date are filled from VCS build settings when available.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "" || info.Version == devVersion {
			if v := bi.Main.Version; v != "" && v != "(devel)" {
				info.Version = v
			}
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			}
		}
	}

	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// GetVersion returns the version string.
func GetVersion() string {
	return Get().Version
}

// GetFullVersion returns "<version> (commit: <commit>, built: <date>)".
func GetFullVersion() string {
	i := Get()
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
