// Package buildinfo reports which blockgrid build is running.
//
// Release builds stamp the variables through ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/blockgrid/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/blockgrid/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/blockgrid/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with plain "go install" or "go build" fall back to the
// module version and VCS stamp the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Version participates in layout cache keys, so layouts computed by one
// release are never served to another.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fillFrom(info)
	}
}

// fillFrom replaces unstamped variables with values from the embedded
// build metadata.
func fillFrom(info *debug.BuildInfo) {
	if v := info.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
