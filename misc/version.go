// Package misc keeps build time information about the program.
package misc

import (
	"runtime/debug"
)

// Set by the linker: -X bylaws/misc.version=... -X bylaws/misc.gitHash=...
var (
	version = "dev"
	gitHash = ""
)

const appName = "bylaws"

// GetAppName returns name of the application, used for logs, temporary files and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns git commit program was built from, falling back to VCS
// information embedded by the go toolchain.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
