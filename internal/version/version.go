// Package version provides build information for asa.
package version

import (
	"runtime/debug"
)

// Version is overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash, overridden at build time using ldflags.
var Commit = "unknown"

// String returns the version including the commit hash if available.
func String() string {
	v := Version
	if v == "development" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if Commit != "unknown" {
		return v + "+" + Commit
	}
	return v
}

// UserAgent is sent with every API request.
func UserAgent() string {
	return "asa/" + String()
}
