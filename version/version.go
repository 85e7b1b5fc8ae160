// Package version reports which build of tonnetz is running.
package version

import "runtime/debug"

// Version can be set at build time:
//
//	go build -ldflags "-X github.com/tonnetz-go/tonnetz/version.Version=$(git describe --dirty)" ./cmd/tonnetz
var Version string

// Hash is the short VCS revision the binary was built from, with a -dirty
// suffix for modified trees, or empty when the build has no VCS stamp.
var Hash = vcsHash()

// VersionOrHash prefers the explicit Version.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

func vcsHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	modified := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		revision += "-dirty"
	}
	return revision
}
