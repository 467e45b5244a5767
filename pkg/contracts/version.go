package contracts

import (
	"fmt"
	"runtime"
)

const (
	// ServiceName identifies the dashboard in logs and telemetry
	ServiceName = "transformacion-dashboard"

	// Version is the current version of the application
	Version = "0.3.0"

	// DataFormatVersion tags the JSON payload layout served under /api
	DataFormatVersion = "v1"
)

// Set at build time:
//
//	go build -ldflags "-X .../pkg/contracts.BuildTime=... -X .../pkg/contracts.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Service      string `json:"service"`
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	DataFormat   string `json:"data_format"`
}

// GetVersionInfo returns the build and runtime details of this binary
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Service:      ServiceName,
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		DataFormat:   DataFormatVersion,
	}
}

// GetFullVersionString formats the version for -version output
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("%s v%s (data %s, built %s, commit %s, %s %s/%s)",
		info.Service, info.Version, info.DataFormat,
		info.BuildTime, info.GitCommit,
		info.GoVersion, info.OS, info.Architecture)
}
