// Package version exposes build-time version information.
package version

import "fmt"

var (
	// Version is the current version of skillsync, set during the build.
	Version = "dev"

	// GitCommit is the git commit SHA that was built, set during the build.
	GitCommit = "unknown"
)

// Info represents version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
}

// Get returns the version information
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
	}
}

// String returns the string representation of version info
func (i Info) String() string {
	return fmt.Sprintf("Version: %s, GitCommit: %s", i.Version, i.GitCommit)
}
