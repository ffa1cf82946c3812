// Package version reports build metadata, set with -ldflags at build time
// or read from the embedded build information.
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Metadata describes the running binary
type Metadata struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Compiler  string `json:"compiler"`
	Source    string `json:"source,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Name of the project, used in the user agent and the MCP implementation
	Name = "toolbridge"

	// Length of an abbreviated commit hash
	shortHash = 12
)

var (
	GitTag    string
	GitBranch string
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, the branch or the abbreviated commit, in that
// order of preference, or "dev" when none is known
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := setting("vcs.revision"); len(hash) > shortHash {
		return hash[:shortHash]
	} else if hash != "" {
		return hash
	}
	return "dev"
}

// UserAgent returns the value sent in the User-Agent header of remote calls
func UserAgent() string {
	return Name + "/" + Version()
}

// Info returns the build metadata for the named executable
func Info(execName string) Metadata {
	meta := Metadata{
		Name:      execName,
		Version:   Version(),
		Compiler:  runtime.Version(),
		Tag:       GitTag,
		Branch:    GitBranch,
		Hash:      setting("vcs.revision"),
		BuildTime: setting("vcs.time"),
		Modified:  setting("vcs.modified") == "true",
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		meta.Source = info.Main.Path
	}
	if goos, goarch := setting("GOOS"), setting("GOARCH"); goos != "" && goarch != "" {
		meta.Platform = goos + "/" + goarch
	}
	return meta
}

// JSON returns the build metadata as indented JSON
func JSON(execName string) ([]byte, error) {
	return json.MarshalIndent(Info(execName), "", "  ")
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
