// Package version reports build metadata for the mousemacro binary.
package version

import (
	"fmt"
	"runtime"
)

// Build information, set at build time via
// -ldflags "-X github.com/teranos/mousemacro/version.Version=v0.3.0 ..."
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash" yaml:"commit_hash"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	Version    string `json:"version" yaml:"version"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Platform   string `json:"platform" yaml:"platform"`
	Native     bool   `json:"native_input" yaml:"native_input"` // built with the native tag
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Native:     nativeInput,
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	input := "dry-run only"
	if i.Native {
		input = "native input"
	}
	name := "mousemacro dev"
	if i.Version != "dev" {
		name = "mousemacro " + i.Version
	}
	return fmt.Sprintf("%s (commit %s, built %s, %s)", name, i.Short(), i.BuildTime, input)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
