// Package version holds build metadata injected with ldflags, e.g.
//
//	-ldflags "-X github.com/jmylchreest/hueforge/internal/version.Version=1.2.0
//	          -X github.com/jmylchreest/hueforge/internal/version.Commit=$(git rev-parse HEAD)
//	          -X github.com/jmylchreest/hueforge/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
)

// Unset marks metadata the build did not provide.
const Unset = "unknown"

var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = Unset

	// Date is the build time in RFC3339.
	Date = Unset
)

// Info is the build metadata plus toolchain and platform.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line description of the build.
func String() string {
	return Get().String()
}

func (i Info) String() string {
	if i.Commit != Unset && i.Date != Unset {
		return fmt.Sprintf("hueforge version %s (commit: %s, built: %s, %s, %s)",
			i.Version, shortCommit(i.Commit), i.Date, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("hueforge version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
}

// Short returns just the version.
func Short() string {
	return Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
