// Package buildinfo reports the flipkit version.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/flipkit/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/flipkit/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
//
// Other builds fall back to the VCS stamp the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = ""

	// Date is the build or commit timestamp.
	Date = ""
)

// Info is the resolved build information.
type Info struct {
	Version string
	Commit  string
	Date    string
	Dirty   bool
}

// Get resolves the build information, filling blanks from the embedded
// VCS settings.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fromSettings(info, bi.Settings)
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

func fromSettings(info Info, settings []debug.BuildSetting) Info {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

// ShortCommit is the first 7 characters of the commit.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// String returns the formatted build information.
func (i Info) String() string {
	commit := i.ShortCommit()
	if i.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", i.Version, commit, i.Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return "{{.Name}} " + Get().String() + "\n"
}
