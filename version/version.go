package version

import (
	"runtime/debug"
	"strings"
	"time"
)

const devVersion = "dev"

// Stamped at build time with -ldflags "-X github.com/kbukum/speechkit/version.Version=...".
var (
	Version   = devVersion
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

const shortCommit = 7

// Info describes the running binary.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GitBranch string    `json:"git_branch"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// GetVersionInfo combines the ldflags stamp with the VCS settings the Go
// toolchain embeds. Stamped values win; the current time stands in for a
// missing build time.
func GetVersionInfo() *Info {
	bi, _ := debug.ReadBuildInfo()
	return collect(bi, time.Now().UTC())
}

func collect(bi *debug.BuildInfo, now time.Time) *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		IsRelease: Version != devVersion && !strings.Contains(Version, "dirty"),
	}

	buildTime := BuildTime
	if bi != nil {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value[:min(len(s.Value), shortCommit)]
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if buildTime == "" {
					buildTime = s.Value
				}
			}
		}
	}

	if t, err := time.Parse(time.RFC3339, buildTime); err == nil {
		info.BuildDate, info.BuildTime = t, buildTime
	} else {
		info.BuildDate, info.BuildTime = now, now.Format(time.RFC3339)
	}
	return info
}

// GetShortVersion renders version[-commit][-dirty].
func GetShortVersion() string {
	info := GetVersionInfo()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
		if info.IsDirty {
			parts = append(parts, "dirty")
		}
	}
	return strings.Join(parts, "-")
}

// Resolve returns the stamped build version, or configured when the binary
// was built without one.
func Resolve(configured string) string {
	switch {
	case Version != devVersion && Version != "":
		return Version
	case configured != "":
		return configured
	default:
		return devVersion
	}
}
