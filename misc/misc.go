// Package misc keeps small helpers used across the program.
package misc

import (
	"path/filepath"
	"runtime/debug"
	"strings"
)

// set by the build system via -ldflags
var (
	appName = "anfc"
	version = ""
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	if len(version) > 0 {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && len(bi.Main.Version) > 0 {
		return bi.Main.Version
	}
	return "(devel)"
}

func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 8 {
					return s.Value[:8]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}

// StripExt removes extension from the file name.
func StripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
