// Package buildinfo reports which spiderfy build is running.
//
// Release builds stamp the variables with -ldflags:
//
//	-X github.com/matzehuels/spiderfy/pkg/buildinfo.Version=v0.3.0
//	-X github.com/matzehuels/spiderfy/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)
//	-X github.com/matzehuels/spiderfy/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)
//
// Unstamped binaries (go install, go run) fall back to the module version and
// VCS settings the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Stamped at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var fillOnce sync.Once

// fill replaces unstamped values with what debug.ReadBuildInfo knows.
func fill() {
	fillOnce.Do(func() {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && Commit == "none":
				Commit = s.Value
				if len(Commit) > 12 {
					Commit = Commit[:12]
				}
			case s.Key == "vcs.time" && Date == "unknown":
				Date = s.Value
			}
		}
	})
}

// Current returns the version after filling in unstamped values.
func Current() string {
	fill()
	return Version
}

// String is the multi-line form printed by diagnostics.
func String() string {
	fill()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template for the root command.
func Template() string {
	fill()
	return "{{.Name}} version {{.Version}}\ncommit: " + Commit + "\nbuilt: " + Date + "\n"
}
