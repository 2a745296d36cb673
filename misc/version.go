// Package misc keeps small program-wide helpers which do not belong anywhere
// else: application identity and build information.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "h2f"

// GetAppName returns short program name used for logs, temporary files and
// report archives.
func GetAppName() string {
	return appName
}

var buildInfo = sync.OnceValues(func() (string, string) {
	version := "devel"
	hash := "unknown"

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return version, hash
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			hash = s.Value[:12]
		}
	}
	return version, hash
})

// GetVersion returns module version recorded in build information.
func GetVersion() string {
	v, _ := buildInfo()
	return v
}

// GetGitHash returns abbreviated VCS revision recorded in build information.
func GetGitHash() string {
	_, h := buildInfo()
	return h
}
