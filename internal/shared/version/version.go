// Package version reports the build version of the binary.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

// Current is set at build time with -ldflags "-X .../version.Current=v1.2.3".
var Current = "dev"

// Info is what GET /version returns.
type Info struct {
	Version   string `json:"version"`
	Release   bool   `json:"release"`
	Major     string `json:"major,omitempty"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
}

// Get describes the running binary.
func Get() Info {
	return describe(Current, vcsRevision())
}

func describe(raw, commit string) Info {
	v := canonical(raw)
	info := Info{
		Version:   raw,
		Commit:    commit,
		GoVersion: runtime.Version(),
	}
	if semver.IsValid(v) {
		info.Release = semver.Prerelease(v) == ""
		info.Major = semver.Major(v)
	}
	return info
}

// canonical accepts tags with or without the leading "v".
func canonical(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "v") {
		return raw
	}
	return "v" + raw
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			return s.Value[:12]
		}
	}
	return ""
}
