// Package version reports which build of composer is running.
package version

import (
	"runtime/debug"
	"strings"
)

// Version can be set at build time:
// go build -ldflags "-X github.com/composer-audio/composer/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short VCS revision the binary was built from, with a -dirty
// suffix for modified trees, or empty when unknown.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return revision(info.Settings)
}()

func revision(settings []debug.BuildSetting) string {
	var rev string
	modified := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev != "" && modified {
		rev += "-dirty"
	}
	return rev
}

// String returns Version, the VCS hash or "devel", in that order of
// preference, followed by the Go version.
func String() string {
	v := Version
	if v == "" {
		v = Hash
	}
	if v == "" {
		v = "devel"
	}
	var b strings.Builder
	b.WriteString("composer ")
	b.WriteString(v)
	if info, ok := debug.ReadBuildInfo(); ok {
		b.WriteString(" ")
		b.WriteString(info.GoVersion)
	}
	return b.String()
}
