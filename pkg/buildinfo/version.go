// Package buildinfo provides build-time version information.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/votecloud/votecloud/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/votecloud/votecloud/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/votecloud/votecloud/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/votecloud
//
// Binaries installed with `go install` fall back to the module version and
// VCS stamp recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

var fillOnce sync.Once

// fill replaces unset ldflags values with the embedded build info.
func fill() {
	fillOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && Commit == "none":
				Commit = s.Value
			case s.Key == "vcs.time" && Date == "unknown":
				Date = s.Value
			}
		}
	})
}

// Short returns the version with an abbreviated commit, e.g. "v1.2.0 (3f2a9c1)".
func Short() string {
	fill()
	if Commit == "none" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, abbrev(Commit))
}

// UserAgent identifies votecloud in outgoing HTTP requests.
func UserAgent() string {
	fill()
	return "votecloud/" + Version
}

// String returns the formatted build information.
func String() string {
	fill()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	fill()
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

func abbrev(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
