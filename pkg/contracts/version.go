package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the application
	Version = "1.2.0"

	// APIVersion is the version of the HTTP and WebSocket API
	APIVersion = "v1"

	// DataFormatVersion is the version of the matches CSV contract
	DataFormatVersion = "v1"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Version   string `json:"version"`
	API       string `json:"api_version"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersionInfo returns the build information for the version endpoint
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		API:       APIVersion,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
