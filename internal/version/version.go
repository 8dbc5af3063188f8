// Package version reports build information for the texport binary.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var versionFile string

// Set via:
//
//	go build -ldflags "-X github.com/ellipszist/texport/internal/version.gitCommit=VALUE"
var (
	gitCommit string
	buildDate string
)

const unknown = "unknown"

// Info is the version and build information of the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// String formats Info for `texport version`.
func (i Info) String() string {
	return fmt.Sprintf("Version:    %s\nGit Commit: %s\nBuild Date: %s\nGo Version: %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion)
}

// Short returns "texport <version> (<commit>)".
func (i Info) Short() string {
	return fmt.Sprintf("texport %s (%s)", i.Version, i.GitCommit)
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   strings.TrimSpace(versionFile),
		GitCommit: commit(),
		BuildDate: orUnknown(buildDate),
		GoVersion: runtime.Version(),
	}
}

// commit prefers the linker flag, then VCS stamps from go install builds.
func commit() string {
	if gitCommit != "" {
		return gitCommit
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknown
	}
	return vcsRevision(info.Settings)
}

func vcsRevision(settings []debug.BuildSetting) string {
	var revision string
	var dirty bool
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision == "" {
		return unknown
	}
	if dirty {
		revision += "-dirty"
	}
	return revision
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
