// Package version exposes build information injected at link time.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set via -ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/ncobase/ncursor/version.Version=v1.2.0"
var (
	Version  = "0.0.0"
	Branch   = "unknown"
	Revision = "unknown"
	BuiltAt  = "unknown"
)

// Info is a snapshot of the build information.
type Info struct {
	Version   string `json:"version"`
	Branch    string `json:"branch"`
	Revision  string `json:"revision"`
	BuiltAt   string `json:"builtAt"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo assembles the build info. Fields the linker did not set
// fall back to the toolchain's embedded build info and the current time.
func GetVersionInfo() Info {
	info := Info{
		Version:   Version,
		Branch:    Branch,
		Revision:  Revision,
		BuiltAt:   BuiltAt,
		GoVersion: runtime.Version(),
	}
	if info.Revision == "unknown" {
		info.Revision = vcsRevision()
	}
	if info.BuiltAt == "unknown" {
		info.BuiltAt = time.Now().Format(time.RFC3339)
	}
	return info
}

// vcsRevision reads the short commit hash stamped by the Go toolchain.
func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, setting := range bi.Settings {
		if setting.Key == "vcs.revision" {
			if len(setting.Value) > 7 {
				return setting.Value[:7]
			}
			return setting.Value
		}
	}
	return "unknown"
}

// String renders the info one field per line.
func (i Info) String() string {
	return fmt.Sprintf("Version: %s\nBranch: %s\nRevision: %s\nBuilt At: %s\nGo Version: %s",
		i.Version, i.Branch, i.Revision, i.BuiltAt, i.GoVersion)
}

// JSON renders the info as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Print writes the info to stdout.
func Print() {
	fmt.Println(GetVersionInfo().String())
}
