package version

import (
	"runtime"
	"runtime/debug"
)

// These are set at build time with -ldflags "-X github.com/openshift-eng/report-summary/pkg/version.gitCommit=..."
var (
	gitCommit = ""
	buildDate = ""
)

type Info struct {
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the build information, falling back to the vcs revision recorded by the go
// toolchain when no commit was injected.
func Get() Info {
	info := Info{
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info.GitCommit == "" {
		info.GitCommit = "unknown"
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range bi.Settings {
				switch setting.Key {
				case "vcs.revision":
					info.GitCommit = setting.Value
				case "vcs.time":
					if info.BuildDate == "" {
						info.BuildDate = setting.Value
					}
				}
			}
		}
	}

	return info
}
