// Package version reports which build of swatch is running.
//
// Release builds set Version, Commit and Date with -ldflags -X. Builds made
// with `go install` or from a checkout fall back to the module version and
// VCS stamps embedded by the Go toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

// Set at link time, e.g.
// -ldflags "-X github.com/jmylchreest/swatch/internal/version.Version=1.2.0".
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo merges the link-time values with the embedded build information.
// Link-time values win.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// Short returns the version with a short commit, e.g. "1.2.0 (0123abcd)".
func Short() string {
	info := GetInfo()
	if info.Commit == unknown {
		return info.Version
	}
	return fmt.Sprintf("%s (%s)", info.Version, info.shortCommit())
}

// String returns the full one-line description printed by `swatch version`.
func String() string {
	info := GetInfo()
	parts := []string{info.GoVersion, info.Platform}
	if info.Date != unknown {
		parts = append([]string{"built " + info.Date}, parts...)
	}
	if info.Commit != unknown {
		parts = append([]string{"commit " + info.shortCommit()}, parts...)
	}
	return fmt.Sprintf("swatch %s (%s)", info.Version, strings.Join(parts, ", "))
}

func (i Info) shortCommit() string {
	c := i.Commit
	if len(c) > 8 {
		c = c[:8]
	}
	if i.Modified {
		c += "-dirty"
	}
	return c
}
